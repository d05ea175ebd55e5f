package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your points, level and badges",
	RunE:  runProfile,
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List badges",
	RunE:  runBadges,
}

var badgeClaimCmd = &cobra.Command{
	Use:   "claim [badge-id]",
	Short: "Claim a badge you have enough points for",
	Args:  cobra.ExactArgs(1),
	RunE:  runBadgeClaim,
}

func init() {
	badgesCmd.AddCommand(badgeClaimCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	p := sess.store.Profile()
	done := 0
	for _, proj := range sess.store.Projects() {
		if proj.IsDone() {
			done++
		}
	}

	fmt.Println(titleStyle.Render(p.Username))
	fmt.Println(mutedStyle.Render(p.Level))
	fmt.Printf("\nPoin:       %s\n", pointsStyle.Render(fmt.Sprint(p.Points)))
	fmt.Printf("Proyek:     %d selesai dari %d\n", done, len(sess.store.Projects()))
	fmt.Printf("Inventaris: %d barang\n", len(sess.store.Inventory()))
	fmt.Printf("Lencana:    %d dari %d\n", len(p.ClaimedBadges), len(sess.store.Badges()))
	return nil
}

func runBadges(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	points := sess.store.Points()
	fmt.Printf("Poin: %s\n\n", pointsStyle.Render(fmt.Sprint(points)))
	for _, b := range sess.store.Badges() {
		state := mutedStyle.Render(fmt.Sprintf("butuh %d poin", b.RequiredPoints))
		switch {
		case b.Claimed:
			state = successStyle.Render("diklaim")
		case b.Claimable(points):
			state = pointsStyle.Render("bisa diklaim")
		}
		fmt.Printf("  %-3s %-9s %5d  %s\n", b.ID, b.Name, b.RequiredPoints, state)
	}
	return nil
}

func runBadgeClaim(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	claimed, err := sess.store.ClaimBadge(cmd.Context(), args[0])
	if !claimed {
		fmt.Printf("Badge %s cannot be claimed (unknown, already claimed or not enough points)\n", args[0])
		return nil
	}
	if err != nil {
		warn("Claimed here, but saving failed: %v", err)
		return nil
	}
	success("Badge %s claimed", args[0])
	return nil
}
