package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/existflow/upcycle/internal/docstore"
	"github.com/existflow/upcycle/internal/logger"
	"github.com/existflow/upcycle/internal/model"
)

// LoadPosts replaces the community feed with the global collection
func (s *Store) LoadPosts(ctx context.Context) error {
	_, gen := s.session()

	docs, err := s.docs.GetAll(ctx, docstore.Posts)
	if err != nil {
		s.warn("Failed to load posts", CollectionPosts, err)
		return fmt.Errorf("load posts: %w", err)
	}

	posts := make([]model.CommunityPost, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, decodePost(d))
	}

	s.mu.Lock()
	if s.generation == gen {
		s.posts = posts
	}
	s.mu.Unlock()

	s.notify(CollectionPosts)
	return nil
}

// Posts returns the mirrored community feed
func (s *Store) Posts() []model.CommunityPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.posts)
}

// Post looks up a mirrored post by id
func (s *Store) Post(id int64) (model.CommunityPost, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByKey(s.posts, id, postKey)
}

// AddCommunityPost stores a post under its id, stamped with the creation
// time, and prepends it locally
func (s *Store) AddCommunityPost(ctx context.Context, post model.CommunityPost) error {
	id := strconv.FormatInt(post.ID, 10)
	if err := s.docs.Set(ctx, docstore.Posts, id, encodePost(post, s.now().UnixMilli())); err != nil {
		s.warn("Failed to add post", CollectionPosts, err, logger.F("post", post.ID))
		return fmt.Errorf("add post: %w", err)
	}

	s.mu.Lock()
	s.posts, _ = insertIfAbsent(s.posts, post, postKey, true)
	s.mu.Unlock()

	s.notify(CollectionPosts)
	return nil
}

// ShareProject publishes a project to the community under the user's name
func (s *Store) ShareProject(ctx context.Context, projectID int64) (model.CommunityPost, error) {
	if s.UserID() == "" {
		return model.CommunityPost{}, ErrNoSession
	}
	p, ok := s.Project(projectID)
	if !ok {
		return model.CommunityPost{}, ErrProjectNotFound
	}

	post := model.PostFromProject(p, s.Profile().Username, s.now())
	if err := s.AddCommunityPost(ctx, post); err != nil {
		return model.CommunityPost{}, err
	}
	s.record(ctx, model.ActivityCommunityPost, "Membagikan "+post.Title, "Dibagikan ke komunitas")
	return post, nil
}

// PublishPost creates a post from scratch
func (s *Store) PublishPost(ctx context.Context, title, category, difficulty string) (model.CommunityPost, error) {
	if s.UserID() == "" {
		return model.CommunityPost{}, ErrNoSession
	}

	post := model.NewCommunityPost(title, category, difficulty, s.Profile().Username, s.now())
	if err := s.AddCommunityPost(ctx, post); err != nil {
		return model.CommunityPost{}, err
	}
	s.record(ctx, model.ActivityCommunityPost, "Membuat postingan "+post.Title, post.Impact)
	return post, nil
}

// LikePost adds one like to a post
func (s *Store) LikePost(ctx context.Context, postID int64) (model.CommunityPost, error) {
	if s.UserID() == "" {
		return model.CommunityPost{}, ErrNoSession
	}
	post, ok := s.Post(postID)
	if !ok {
		return model.CommunityPost{}, ErrPostNotFound
	}

	post.Likes++
	id := strconv.FormatInt(post.ID, 10)
	if err := s.docs.Update(ctx, docstore.Posts, id, map[string]any{"likes": post.Likes}); err != nil {
		s.warn("Failed to like post", CollectionPosts, err, logger.F("post", post.ID))
		return model.CommunityPost{}, fmt.Errorf("like post: %w", err)
	}

	s.mu.Lock()
	replaceByKey(s.posts, post, postKey)
	s.mu.Unlock()
	s.notify(CollectionPosts)

	s.record(ctx, model.ActivityCommunityLike, "Menyukai "+post.Title, "Karya "+post.CreatorName)
	return post, nil
}

func postKey(p model.CommunityPost) int64 { return p.ID }
