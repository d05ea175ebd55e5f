package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/existflow/upcycle/internal/config"
	"github.com/existflow/upcycle/internal/logger"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Manage your account on an upcycle server.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to the server",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from the server",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account on the server",
	RunE:  runRegister,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show login status",
	RunE:  runStatus,
}

var serverCmd = &cobra.Command{
	Use:   "server [url]",
	Short: "Show or set the server URL",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServer,
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(statusCmd)
	authCmd.AddCommand(serverCmd)
}

func readLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

// useBackend remembers the backend so later commands follow the login
func useBackend(name string) {
	if cfg.Backend == name {
		return
	}
	cfg.Backend = name
	if err := cfg.Save(); err != nil {
		logger.Warn("Failed to save config", logger.Err(err))
		return
	}
	fmt.Println(mutedStyle.Render("Backend: " + name))
}

func runLogin(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	username := readLine(reader, "Username: ")
	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	fmt.Println("🔄 Logging in...")
	if err := client.Login(cmd.Context(), username, password); err != nil {
		return err
	}

	success("Logged in as %s", username)
	useBackend(config.BackendRemote)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if !client.IsLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Println("🔄 Logging out...")
	if err := client.Logout(cmd.Context()); err != nil {
		// The local token is gone either way
		warn("Server did not confirm logout: %v", err)
	}

	success("Logged out")
	useBackend(config.BackendLocal)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	username := readLine(reader, "Username: ")
	email := readLine(reader, "Email: ")

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Confirm Password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	fmt.Println("🔄 Creating account...")
	if err := client.Register(cmd.Context(), username, email, password); err != nil {
		return err
	}

	success("Account created and logged in")
	useBackend(config.BackendRemote)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	s := client.Session()
	fmt.Printf("Backend:  %s\n", cfg.Backend)
	fmt.Printf("Server:   %s\n", s.ServerURL)
	if !client.IsLoggedIn() {
		fmt.Println("Account:  " + mutedStyle.Render("not logged in"))
		return nil
	}

	fmt.Printf("Account:  %s (%s)\n", s.Username, s.UserID)
	if s.ExpiresAt != "" {
		fmt.Printf("Expires:  %s\n", s.ExpiresAt)
	}

	if _, err := client.Me(cmd.Context()); err != nil {
		warn("Session rejected by server: %v", err)
	}
	return nil
}

func runServer(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Println(client.Session().ServerURL)
		return nil
	}

	if err := client.SetServer(args[0]); err != nil {
		return fmt.Errorf("failed to save server: %w", err)
	}
	success("Server set to %s", client.Session().ServerURL)
	return nil
}
