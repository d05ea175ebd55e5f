package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/upcycle/internal/scan"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan an item and add it to the inventory",
	RunE:  runScan,
}

var scanDryRun bool

func init() {
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "Show the result without saving it")
}

type scanDoneMsg struct {
	result scan.Result
	err    error
}

// scanModel spins while the scanner works
type scanModel struct {
	spinner spinner.Model
	scan    func() (scan.Result, error)
	done    scanDoneMsg
}

func (m scanModel) Init() tea.Cmd {
	run := m.scan
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		result, err := run()
		return scanDoneMsg{result: result, err: err}
	})
}

func (m scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scanDoneMsg:
		m.done = msg
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.done.err = context.Canceled
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m scanModel) View() string {
	if m.done.err != nil || m.done.result.Name != "" {
		return ""
	}
	return m.spinner.View() + " Memindai...\n"
}

// runScanner waits for a scan, with a spinner on a terminal
func runScanner(ctx context.Context, scanner *scan.Scanner) (scan.Result, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return scanner.Scan(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle

	m := scanModel{
		spinner: sp,
		scan:    func() (scan.Result, error) { return scanner.Scan(ctx) },
	}
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return scan.Result{}, err
	}
	done := final.(scanModel).done
	return done.result, done.err
}

func runScan(cmd *cobra.Command, args []string) error {
	delay, err := cfg.ScanDuration()
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	result, err := runScanner(cmd.Context(), scan.New(delay))
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	fmt.Println(titleStyle.Render(result.Name))
	fmt.Printf("Kategori:  %s\n", result.Category)
	fmt.Printf("Berat:     %s\n", result.Weight)
	fmt.Printf("Hemat:     %s\n", result.CarbonSaved)

	if scanDryRun {
		return nil
	}

	item := result.InventoryItem(time.Now())
	if err := sess.store.SaveScannedItem(cmd.Context(), item); err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	success("Added to inventory (%s)", item.Status)
	return nil
}
