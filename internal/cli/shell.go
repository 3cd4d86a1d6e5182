package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/activities-client/internal/services/page"
)

const shellHelp = `Commands:
  list                              show activities
  login <user> <pass>               log in as staff
  logout                            log out
  whoami                            show the current login
  signup <activity...> <email>      sign a student up
  unregister <activity...> <email>  remove a student (staff only)
  status                            show the current notification
  help                              show this help
  quit                              leave the shell`

var errQuit = errors.New("quit")

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session",
		Long: `shell keeps one session open and reads commands from stdin.
Notifications stay visible for the notification TTL; use "status" to see
whether one is still showing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.Page.Load(ctx)

			sh := &shell{
				page: app.Page,
				out:  output(cmd),
				w:    cmd.OutOrStdout(),
			}
			return sh.run(ctx, cmd.InOrStdin())
		},
	}
}

// shell is a line-oriented front end over the page controller
type shell struct {
	page *page.Controller
	out  *Output
	w    io.Writer
}

func (s *shell) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.w, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.w)
			return scanner.Err()
		}

		err := s.exec(ctx, strings.Fields(scanner.Text()))
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			s.out.PrintError(err)
		}
	}
}

func (s *shell) exec(ctx context.Context, fields []string) error {
	if len(fields) == 0 {
		return nil
	}

	switch name, args := fields[0], fields[1:]; name {
	case "list":
		state := s.page.Refresh(ctx)
		s.out.Print(RosterFromView(state.Roster))
	case "login":
		if len(args) != 2 {
			return errors.New("usage: login <user> <pass>")
		}
		if err := s.page.SubmitLogin(ctx, args[0], args[1]); err != nil {
			return err
		}
		s.out.Print(SessionFromModel(s.page.State().Session))
	case "logout":
		s.page.ClickLogout(ctx)
		s.out.PrintMessage("Logged out")
	case "whoami":
		s.out.Print(SessionFromModel(s.page.State().Session))
	case "signup", "unregister":
		if len(args) < 2 {
			return fmt.Errorf("usage: %s <activity...> <email>", name)
		}
		// Same order as the signup and unregister commands; the email is
		// the last field since activity names may contain spaces
		activity, email := strings.Join(args[:len(args)-1], " "), args[len(args)-1]
		if name == "signup" {
			s.page.SubmitSignup(ctx, activity, email)
		} else {
			s.page.ClickUnregister(ctx, activity, email)
		}
		s.printStatus()
	case "status":
		s.printStatus()
	case "help":
		fmt.Fprintln(s.w, shellHelp)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", name)
	}
	return nil
}

func (s *shell) printStatus() {
	n := s.page.State().Notification
	if n == nil {
		s.out.PrintMessage("No notification")
		return
	}
	s.out.Print(NotificationFromModel(*n))
}
