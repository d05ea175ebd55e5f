package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/upcycle/internal/browse"
	"github.com/existflow/upcycle/internal/model"
	"github.com/existflow/upcycle/internal/remote"
	"github.com/existflow/upcycle/internal/store"
	"github.com/spf13/cobra"
)

var postsCmd = &cobra.Command{
	Use:     "posts [query]",
	Aliases: []string{"community"},
	Short:   "Browse the community feed",
	Long: `List community posts whose title or creator contains the query.

Examples:
  upcycle posts
  upcycle posts kaleng --category Logam
  upcycle posts --top 3
  upcycle posts --watch`,
	RunE: runPosts,
}

var postLikeCmd = &cobra.Command{
	Use:   "like [post-id]",
	Short: "Like a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostLike,
}

var postShareCmd = &cobra.Command{
	Use:   "share [project-id]",
	Short: "Share one of your projects with the community",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostShare,
}

var postPublishCmd = &cobra.Command{
	Use:   "publish [title]",
	Short: "Publish a new idea to the community",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPostPublish,
}

var postAdoptCmd = &cobra.Command{
	Use:   "adopt [post-id]",
	Short: "Start a project that recreates a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostAdopt,
}

var (
	postsCategory     string
	postsTop          int
	postsWatch        bool
	postsInterval     time.Duration
	publishCategory   string
	publishDifficulty string
)

func init() {
	postsCmd.Flags().StringVarP(&postsCategory, "category", "c", browse.AllCategories, "Only posts of this category")
	postsCmd.Flags().IntVar(&postsTop, "top", 0, "Show only the N most liked posts")
	postsCmd.Flags().BoolVarP(&postsWatch, "watch", "w", false, "Keep reloading the feed")
	postsCmd.Flags().DurationVar(&postsInterval, "interval", remote.DefaultPollInterval, "Reload interval for --watch")

	postPublishCmd.Flags().StringVarP(&publishCategory, "category", "c", "Plastik", "Category of the post")
	postPublishCmd.Flags().StringVarP(&publishDifficulty, "difficulty", "d", model.DifficultyEasy,
		"Difficulty ("+model.DifficultyEasy+", "+model.DifficultyMedium+", "+model.DifficultyHard+")")

	postsCmd.AddCommand(postLikeCmd)
	postsCmd.AddCommand(postShareCmd)
	postsCmd.AddCommand(postPublishCmd)
	postsCmd.AddCommand(postAdoptCmd)
}

func runPosts(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	query := strings.Join(args, " ")
	printFeed(sess.store, query)
	if !postsWatch {
		return nil
	}

	r := remote.NewRefresher(postsInterval, nil, sess.store.LoadPosts)
	defer r.Stop()

	refreshed := make(chan struct{}, 1)
	r.SetOnRefresh(func() {
		select {
		case refreshed <- struct{}{}:
		default:
		}
	})

	fmt.Println(mutedStyle.Render(fmt.Sprintf("Watching every %s, Ctrl+C to stop", postsInterval)))
	for {
		select {
		case <-refreshed:
			fmt.Println(mutedStyle.Render("── " + time.Now().Format("15:04:05") + " ──"))
			printFeed(sess.store, query)
		case <-cmd.Context().Done():
			return nil
		}
	}
}

func printFeed(s *store.Store, query string) {
	posts := browse.FilterPosts(s.Posts(), query, postsCategory)
	if postsTop > 0 {
		posts = browse.TopPosts(posts, postsTop)
	}
	if len(posts) == 0 {
		fmt.Println("No posts found.")
		return
	}

	for _, p := range posts {
		fmt.Printf("%s %-11d %-32s %-14s ♥ %-4d %s\n",
			swatch(p.Color), p.ID, truncate(p.Title, 32), truncate(p.CreatorName, 14),
			p.Likes, mutedStyle.Render(p.Impact))
	}
}

func runPostLike(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	post, err := sess.store.LikePost(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to like post: %w", err)
	}
	success("Liked %s (♥ %d)", post.Title, post.Likes)
	return nil
}

func runPostShare(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	post, err := sess.store.ShareProject(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to share project: %w", err)
	}
	success("Shared %s as post %d", post.Title, post.ID)
	return nil
}

func runPostPublish(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	title := strings.Join(args, " ")
	post, err := sess.store.PublishPost(cmd.Context(), title, publishCategory, publishDifficulty)
	if err != nil {
		return fmt.Errorf("failed to publish post: %w", err)
	}
	success("Published %s (%s)", post.Title, post.Impact)
	return nil
}

func runPostAdopt(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	p, err := sess.store.AdoptCommunityPost(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to adopt post: %w", err)
	}
	success("Project created: %s (%d)", p.Title, p.ID)
	return nil
}
