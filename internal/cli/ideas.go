package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/upcycle/internal/browse"
	"github.com/existflow/upcycle/internal/store"
	"github.com/spf13/cobra"
)

var ideasCmd = &cobra.Command{
	Use:   "ideas [keywords...]",
	Short: "Search project ideas",
	Long: `List ideas matching any keyword in the title, category or materials.

Examples:
  upcycle ideas
  upcycle ideas botol kaleng
  upcycle ideas --category Plastik`,
	RunE: runIdeas,
}

var ideaShowCmd = &cobra.Command{
	Use:   "show [idea-id]",
	Short: "Show an idea with tools, materials and steps",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdeaShow,
}

var ideaAdoptCmd = &cobra.Command{
	Use:   "adopt [idea-id]",
	Short: "Start a project from an idea",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdeaAdopt,
}

var ideasCategory string

func init() {
	ideasCmd.Flags().StringVarP(&ideasCategory, "category", "c", "", "Only ideas of this category")
	ideasCmd.AddCommand(ideaShowCmd)
	ideasCmd.AddCommand(ideaAdoptCmd)
}

func runIdeas(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	ideas := browse.FilterIdeas(sess.store.Ideas(), strings.Join(args, " "), ideasCategory)
	if len(ideas) == 0 {
		fmt.Println("No ideas found.")
		return nil
	}

	for _, idea := range ideas {
		fmt.Printf("%s %-4d %-36s %-8s %-7s %s\n",
			swatch(idea.Color), idea.ID, truncate(idea.Title, 36),
			idea.Category, idea.Difficulty, mutedStyle.Render(idea.TimeRequired))
	}
	return nil
}

func runIdeaShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	idea, ok := sess.store.Idea(id)
	if !ok {
		return store.ErrIdeaNotFound
	}

	fmt.Println(titleStyle.Render(idea.Title))
	fmt.Println(mutedStyle.Render(fmt.Sprintf("%s • %s • %s", idea.Category, idea.Difficulty, idea.TimeRequired)))
	if idea.Description != "" {
		fmt.Println("\n" + idea.Description)
	}
	printList("Alat", idea.Tools, false)
	printList("Bahan", idea.Materials, false)
	printList("Langkah", idea.Steps, true)
	return nil
}

func runIdeaAdopt(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	p, err := sess.store.AdoptIdea(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to adopt idea: %w", err)
	}

	success("Project created: %s (%d)", p.Title, p.ID)
	fmt.Println(mutedStyle.Render(fmt.Sprintf("Start it with: upcycle projects start %d", p.ID)))
	return nil
}

func printList(title string, items []string, numbered bool) {
	if len(items) == 0 {
		return
	}
	fmt.Println("\n" + sectionStyle.Render(title))
	for i, item := range items {
		if numbered {
			fmt.Printf("  %d. %s\n", i+1, item)
		} else {
			fmt.Printf("  • %s\n", item)
		}
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
