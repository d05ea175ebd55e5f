package cli

import (
	"fmt"
	"time"

	"github.com/existflow/upcycle/internal/browse"
	"github.com/existflow/upcycle/internal/model"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your activity history",
	Long: `Show your recent activity grouped by day.

Examples:
  upcycle history
  upcycle history --type SCAN`,
	RunE: runHistory,
}

var historyType string

func init() {
	historyCmd.Flags().StringVarP(&historyType, "type", "t", "",
		"Only events of this type (SCAN, PROJECT_START, PROJECT_COMPLETE, COMMUNITY_POST, COMMUNITY_LIKE, BADGE_UNLOCK)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	var typ *model.ActivityType
	if historyType != "" {
		t, ok := model.ParseActivityType(historyType)
		if !ok {
			return fmt.Errorf("unknown activity type %q", historyType)
		}
		typ = &t
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	events := browse.FilterActivities(sess.store.Activity(), typ)
	if len(events) == 0 {
		fmt.Println("No activity yet.")
		return nil
	}

	now := time.Now()
	for i, group := range browse.GroupActivities(events, now) {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(sectionStyle.Render(group.Label))
		for _, e := range group.Events {
			fmt.Printf("  %s %-13s %-34s %s\n",
				swatch(e.Type.Color()), browse.ActivityLabel(e.Type),
				truncate(e.Title, 34), mutedStyle.Render(browse.RelativeTime(e.Time(), now)))
			if e.Description != "" {
				fmt.Println(mutedStyle.Render("                  " + e.Description))
			}
		}
	}
	return nil
}
