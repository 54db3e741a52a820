package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/simply-app/simply-cli/internal/session"
	"github.com/simply-app/simply-cli/internal/tokeninfo"
	"github.com/spf13/cobra"
)

// StatusCommand represents the status command
type StatusCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// statusView is what status prints
type statusView struct {
	LoggedIn       bool          `json:"loggedIn"`
	Session        string        `json:"session"`
	User           *session.User `json:"user,omitempty"`
	TokenExpiresAt *time.Time    `json:"tokenExpiresAt,omitempty"`
	TokenExpiresIn string        `json:"tokenExpiresIn,omitempty"`
	Error          string        `json:"error,omitempty"`
}

// NewStatusCommand creates a new status command
func NewStatusCommand(root *RootCommand) *StatusCommand {
	s := &StatusCommand{
		root: root,
	}

	s.cmd = &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Long: `Show whether you are logged in, who as, and when the access token expires.

The stored session is validated against the backend. An expired access
token is refreshed transparently.

Examples:
  simply status
  simply status -o json`,
		RunE: s.Run,
	}

	return s
}

// Command returns the underlying cobra command
func (s *StatusCommand) Command() *cobra.Command {
	return s.cmd
}

// Run executes the status command
func (s *StatusCommand) Run(cmd *cobra.Command, args []string) error {
	container := s.root.Container()
	authService := container.AuthService()

	view := &statusView{}
	if authService.IsLoggedIn() {
		if err := authService.EnsureAuthenticated(cmd.Context()); err != nil {
			view.Error = err.Error()
		}

		// Read after validation: a refresh may have replaced the token.
		if token, err := authService.AccessToken(); err == nil {
			if info, err := tokeninfo.Inspect(token); err == nil && !info.ExpiresAt.IsZero() {
				now := time.Now()
				view.TokenExpiresAt = &info.ExpiresAt
				view.TokenExpiresIn = "expired"
				if !info.Expired(now) {
					view.TokenExpiresIn = info.Remaining(now).Round(time.Second).String()
				}
			}
		}
	}

	snap := container.Session().Snapshot()
	view.LoggedIn = snap.Status == session.StatusAuthenticated
	view.Session = snap.Status.String()
	view.User = snap.User

	return render(cmd, view, func(w io.Writer) error {
		if !view.LoggedIn {
			fmt.Fprintln(w, "Not logged in.")
			if view.Error != "" {
				fmt.Fprintf(w, "  %s\n", view.Error)
			}
			fmt.Fprintln(w, "\nLog in with: simply login")
			return nil
		}

		fmt.Fprintf(w, "Logged in as %s %s\n", view.User.FirstName, view.User.LastName)
		fmt.Fprintf(w, "Email:   %s\n", view.User.Email)
		if view.User.Level != "" {
			fmt.Fprintf(w, "Level:   %s\n", view.User.Level)
		}
		if view.User.KYCStatus != "" {
			fmt.Fprintf(w, "KYC:     %s\n", view.User.KYCStatus)
		}
		if view.TokenExpiresAt != nil {
			fmt.Fprintf(w, "Token:   expires %s (%s)\n", view.TokenExpiresAt.Local().Format("2006-01-02 15:04:05"), expiresIn(view.TokenExpiresIn))
		}
		return nil
	})
}

func expiresIn(remaining string) string {
	if remaining == "expired" {
		return remaining
	}
	return "in " + remaining
}
