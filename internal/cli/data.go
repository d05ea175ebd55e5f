package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill empty idea and community collections",
	Long: `Write the starter ideas and community posts when their collections
are empty. Running it again changes nothing.`,
	RunE: runSeed,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Backfill missing images",
	Long: `Fill in the image of ideas, posts and your projects that were stored
before images existed. Documents that already have one are left alone.`,
	RunE: runMigrate,
}

func runSeed(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	ideas, err := sess.store.SeedIdeas(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to seed ideas: %w", err)
	}
	posts, err := sess.store.SeedCommunityPosts(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}

	if ideas+posts == 0 {
		fmt.Printf("Nothing to seed (%d ideas, %d posts present)\n",
			len(sess.store.Ideas()), len(sess.store.Posts()))
		return nil
	}
	success("Seeded %d ideas and %d posts", ideas, posts)
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx := cmd.Context()
	steps := []struct {
		name string
		run  func() (int, error)
	}{
		{"ideas", func() (int, error) { return sess.store.MigrateIdeas(ctx) }},
		{"posts", func() (int, error) { return sess.store.MigratePosts(ctx) }},
		{"projects", func() (int, error) { return sess.store.MigrateProjects(ctx) }},
	}

	for _, step := range steps {
		n, err := step.run()
		if err != nil {
			warn("%s: %v", step.name, err)
			continue
		}
		fmt.Printf("%-9s %d updated\n", step.name, n)
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
