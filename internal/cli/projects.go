package cli

import (
	"fmt"

	"github.com/existflow/upcycle/internal/browse"
	"github.com/existflow/upcycle/internal/model"
	"github.com/existflow/upcycle/internal/store"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"p"},
	Short:   "List your projects",
	Long: `List your projects, optionally by status.

Examples:
  upcycle projects
  upcycle projects --status Berjalan
  upcycle projects start 1714550400
  upcycle projects check 1714550400 1 2
  upcycle projects open 1714550400`,
	RunE: runProjects,
}

var projectStartCmd = &cobra.Command{
	Use:   "start [project-id]",
	Short: "Start working on a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectStart,
}

var projectCheckCmd = &cobra.Command{
	Use:   "check [project-id] [step...]",
	Short: "Set which steps are done and save the progress",
	Long: `Mark the given step numbers (1-based) as done, every other step as
not done, and save. Checking every step completes the project.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProjectCheck,
}

var projectOpenCmd = &cobra.Command{
	Use:   "open [project-id]",
	Short: "Open the checklist on a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runChecklist(cmd, id)
	},
}

var (
	projectsStatus string
	projectsQuery  bool
)

func init() {
	projectsCmd.Flags().StringVarP(&projectsStatus, "status", "s", "",
		"Only projects in this status ("+model.StatusNotStarted.String()+", "+
			model.StatusInProgress.String()+", "+model.StatusDone.String()+")")
	projectsCmd.Flags().BoolVar(&projectsQuery, "query", false, "Filter on the backend instead of the local mirror")

	projectsCmd.AddCommand(projectStartCmd)
	projectsCmd.AddCommand(projectCheckCmd)
	projectsCmd.AddCommand(projectOpenCmd)
}

func runProjects(cmd *cobra.Command, args []string) error {
	var status *model.ProjectStatus
	if projectsStatus != "" {
		s, ok := model.ParseProjectStatus(projectsStatus)
		if !ok {
			return fmt.Errorf("unknown status %q", projectsStatus)
		}
		status = &s
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	var projects []model.Project
	if projectsQuery && status != nil {
		projects, err = sess.store.ProjectsByStatus(cmd.Context(), *status)
		if err != nil {
			return err
		}
	} else {
		projects = browse.ProjectsWithStatus(sess.store.Projects(), status)
	}

	if len(projects) == 0 {
		fmt.Println("No projects. Adopt one with: upcycle ideas adopt <id>")
		return nil
	}

	for _, p := range projects {
		fmt.Printf("%s %-11d %-32s %-8s %4.0f%%  %s\n",
			swatch(p.Color), p.ID, truncate(p.Title, 32), p.Category,
			p.Progress*100, statusText(p.Status))
	}
	return nil
}

func runProjectStart(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	before, ok := sess.store.Project(id)
	if !ok {
		return store.ErrProjectNotFound
	}
	if before.Status != model.StatusNotStarted {
		fmt.Printf("%s is already %s\n", before.Title, statusText(before.Status))
		return nil
	}

	p, err := sess.store.StartProject(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to start project: %w", err)
	}
	success("Started %s", p.Title)
	printSteps(p, model.NewChecklist(p))
	return nil
}

func runProjectCheck(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	before, ok := sess.store.Project(id)
	if !ok {
		return store.ErrProjectNotFound
	}
	switch before.Status {
	case model.StatusNotStarted:
		return fmt.Errorf("%w, run: upcycle projects start %d", store.ErrProjectNotStarted, id)
	case model.StatusDone:
		fmt.Printf("%s is already %s\n", before.Title, statusText(before.Status))
		return nil
	}

	checklist := model.NewChecklist(model.Project{Steps: before.Steps})
	for _, arg := range args[1:] {
		n, err := parseID(arg)
		if err != nil {
			return err
		}
		if n < 1 || int(n) > checklist.Len() {
			return fmt.Errorf("step %d out of range (1-%d)", n, checklist.Len())
		}
		checklist.Set(int(n-1), true)
	}

	p, err := sess.store.SaveProjectProgress(cmd.Context(), id, checklist)
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	printSteps(p, checklist)
	if p.IsDone() && !before.IsDone() {
		success("Project complete! %s", pointsStyle.Render(fmt.Sprintf("+%d poin", model.CompletionPoints)))
		return nil
	}
	success("Progress saved (%.0f%%, %s)", p.Progress*100, p.Status)
	return nil
}

func printSteps(p model.Project, checklist *model.Checklist) {
	fmt.Println(titleStyle.Render(p.Title) + "  " + statusText(p.Status))
	for i, step := range p.Steps {
		box := "[ ]"
		if checklist.Checked(i) {
			box = successStyle.Render("[x]")
		}
		fmt.Printf("  %s %d. %s\n", box, i+1, step)
	}
}
