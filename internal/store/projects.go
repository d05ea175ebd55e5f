package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/existflow/upcycle/internal/docstore"
	"github.com/existflow/upcycle/internal/logger"
	"github.com/existflow/upcycle/internal/model"
)

// LoadProjects replaces the project list with the remote collection
func (s *Store) LoadProjects(ctx context.Context) error {
	uid, gen := s.session()
	if uid == "" {
		return ErrNoSession
	}

	docs, err := s.docs.GetAll(ctx, docstore.UserCollection(uid, docstore.Projects))
	if err != nil {
		s.warn("Failed to load projects", CollectionProjects, err)
		return fmt.Errorf("load projects: %w", err)
	}

	projects := decodeProjects(docs)

	s.mu.Lock()
	if s.generation == gen {
		s.projects = projects
	}
	s.mu.Unlock()

	s.notify(CollectionProjects)
	return nil
}

func decodeProjects(docs []docstore.Document) []model.Project {
	projects := make([]model.Project, 0, len(docs))
	for _, d := range docs {
		projects = append(projects, decodeProject(d))
	}
	return projects
}

// Projects returns the mirrored projects
func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.projects)
}

// Project looks up a mirrored project by id
func (s *Store) Project(id int64) (model.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByKey(s.projects, id, projectKey)
}

// ProjectsByStatus queries the remote collection for projects in a state
func (s *Store) ProjectsByStatus(ctx context.Context, status model.ProjectStatus) ([]model.Project, error) {
	uid, _ := s.session()
	if uid == "" {
		return nil, ErrNoSession
	}

	docs, err := s.docs.WhereEquals(ctx, docstore.UserCollection(uid, docstore.Projects), "status", status.String())
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	return decodeProjects(docs), nil
}

// AddProject stores a project under its id and prepends it locally
func (s *Store) AddProject(ctx context.Context, p model.Project) error {
	uid, gen := s.session()
	if uid == "" {
		return ErrNoSession
	}

	id := strconv.FormatInt(p.ID, 10)
	if err := s.docs.Set(ctx, docstore.UserCollection(uid, docstore.Projects), id, encodeProject(p)); err != nil {
		s.warn("Failed to add project", CollectionProjects, err, logger.F("project", p.ID))
		return fmt.Errorf("add project: %w", err)
	}

	s.mu.Lock()
	if s.generation == gen {
		s.projects, _ = insertIfAbsent(s.projects, p, projectKey, true)
	}
	s.mu.Unlock()

	s.notify(CollectionProjects)
	return nil
}

// UpdateProjectProgress writes the status and progress of p to the remote
// document. The local list is not touched; see ReplaceLocalProject.
func (s *Store) UpdateProjectProgress(ctx context.Context, p model.Project) error {
	uid, _ := s.session()
	if uid == "" {
		return ErrNoSession
	}

	id := strconv.FormatInt(p.ID, 10)
	err := s.docs.Update(ctx, docstore.UserCollection(uid, docstore.Projects), id, map[string]any{
		"status":   p.Status.String(),
		"progress": p.Progress,
	})
	if err != nil {
		s.warn("Failed to update project", CollectionProjects, err, logger.F("project", p.ID))
		return fmt.Errorf("update project %d: %w", p.ID, err)
	}
	return nil
}

// ReplaceLocalProject swaps the mirrored project sharing p's id. It
// reports false when no such project is loaded.
func (s *Store) ReplaceLocalProject(p model.Project) bool {
	s.mu.Lock()
	ok := replaceByKey(s.projects, p, projectKey)
	s.mu.Unlock()

	if ok {
		s.notify(CollectionProjects)
	}
	return ok
}

// StartProject moves a NotStarted project to InProgress. Projects already
// started are returned unchanged.
func (s *Store) StartProject(ctx context.Context, id int64) (model.Project, error) {
	if s.UserID() == "" {
		return model.Project{}, ErrNoSession
	}

	current, ok := s.Project(id)
	if !ok {
		return model.Project{}, ErrProjectNotFound
	}
	started, changed := current.Start()
	if !changed {
		return current, nil
	}

	if err := s.UpdateProjectProgress(ctx, started); err != nil {
		return current, err
	}
	s.ReplaceLocalProject(started)
	s.record(ctx, model.ActivityProjectStart, "Memulai "+started.Title, "Proyek "+started.Category+" dimulai")
	return started, nil
}

// SaveProjectProgress applies a checklist to a started project: the
// status becomes Done once every step is checked and stays InProgress
// otherwise. Projects not started yet return ErrProjectNotStarted; saves
// on a Done project change nothing. The first save that reaches Done
// awards CompletionPoints.
//
// Done is persisted before the points. If SetPoints then fails the award
// is lost, since later saves see the project as already Done.
func (s *Store) SaveProjectProgress(ctx context.Context, id int64, checklist *model.Checklist) (model.Project, error) {
	if s.UserID() == "" {
		return model.Project{}, ErrNoSession
	}

	previous, ok := s.Project(id)
	if !ok {
		return model.Project{}, ErrProjectNotFound
	}
	switch previous.Status {
	case model.StatusDone:
		return previous, nil
	case model.StatusNotStarted:
		return previous, ErrProjectNotStarted
	}
	updated := previous.WithProgress(checklist.Progress())

	s.ReplaceLocalProject(updated)
	if err := s.UpdateProjectProgress(ctx, updated); err != nil {
		s.ReplaceLocalProject(previous)
		return previous, err
	}

	if updated.IsDone() {
		if err := s.SetPoints(ctx, s.Points()+model.CompletionPoints); err != nil {
			return updated, err
		}
		s.record(ctx, model.ActivityProjectComplete, "Menyelesaikan "+updated.Title,
			fmt.Sprintf("+%d poin", model.CompletionPoints))
	}
	return updated, nil
}

// AdoptIdea starts a new project from an idea template
func (s *Store) AdoptIdea(ctx context.Context, ideaID int64) (model.Project, error) {
	idea, ok := s.Idea(ideaID)
	if !ok {
		return model.Project{}, ErrIdeaNotFound
	}
	p := model.ProjectFromIdea(idea, s.now())
	if err := s.AddProject(ctx, p); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// AdoptCommunityPost starts a new project that recreates a post
func (s *Store) AdoptCommunityPost(ctx context.Context, postID int64) (model.Project, error) {
	post, ok := s.Post(postID)
	if !ok {
		return model.Project{}, ErrPostNotFound
	}
	p := model.ProjectFromCommunityPost(post, s.now())
	if err := s.AddProject(ctx, p); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

func projectKey(p model.Project) int64 { return p.ID }
