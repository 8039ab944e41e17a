// Package cli is the interactive terminal client of the dashboard. It drives
// the same app.Dashboard as the HTTP API, one command per line.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jsamuelsen/quotedash/internal/app"
	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/ports"
)

// App is one terminal session.
type App struct {
	dash   *app.Dashboard
	src    io.Reader
	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger
	styles styles

	// readPassword reads a secret without echo. Tests replace it.
	readPassword func() (string, error)

	// filter is the last list filter; refresh resets it.
	filter domain.Filter
}

var _ ports.Confirmer = (*App)(nil)

// Option customizes an App.
type Option func(*App)

// WithPasswordReader replaces the terminal password prompt.
func WithPasswordReader(fn func() (string, error)) Option {
	return func(a *App) { a.readPassword = fn }
}

// WithLogger sets the logger. Command failures are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// New creates a client reading commands from in and writing to out.
func New(dash *app.Dashboard, in io.Reader, out io.Writer, opts ...Option) *App {
	a := &App{
		dash:   dash,
		src:    in,
		in:     bufio.NewReader(in),
		out:    out,
		logger: slog.Default(),
		styles: newStyles(out),
	}
	a.readPassword = a.terminalPassword

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Run loads the dashboard of a restored session, then reads commands until
// exit, EOF or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.println(a.styles.heading.Render("YouQuote dashboard") + " (type 'help' for commands)")

	if s, ok := a.dash.Session(); ok {
		a.printf("Signed in as %s.\n", s.User.Name)
		a.Exec(ctx, "refresh", nil)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		a.printf("%s> ", a.status())

		line, err := a.readLine()
		if errors.Is(err, io.EOF) && line == "" {
			a.println()
			return nil
		}

		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "exit" || fields[0] == "quit" {
			a.println("Bye!")
			return nil
		}

		a.Exec(ctx, fields[0], fields[1:])
	}
}

// Exec runs a single command and reports its outcome on out.
func (a *App) Exec(ctx context.Context, name string, args []string) {
	cmd, ok := lookup(name)
	if !ok {
		a.println(a.styles.err.Render("Unknown command: " + name))
		return
	}

	if cmd.session {
		if _, ok := a.dash.Session(); !ok {
			a.println(a.styles.err.Render("Please log in first."))
			return
		}
	}

	if err := cmd.run(a, ctx, args); err != nil {
		a.handleErr(cmd.action, err)
	}
}

// handleErr is where a rejected session sends the user back to login.
func (a *App) handleErr(action string, err error) {
	a.logger.Debug("command failed", slog.String("action", action), slog.Any("error", err))

	a.println(a.styles.err.Render(app.Describe(action, err)))

	if domain.IsUnauthorized(err) {
		a.println("Please log in.")
	}
}

func (a *App) status() string {
	if s, ok := a.dash.Session(); ok {
		return s.User.Name
	}

	return "quotedash"
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	_, _ = fmt.Fprintln(a.out, args...)
}

func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')

	return strings.TrimRight(line, "\r\n"), err
}

// ask prints label and reads one trimmed line.
func (a *App) ask(label string) (string, error) {
	a.printf("%s: ", label)

	line, err := a.readLine()
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// askDefault keeps current when the answer is empty.
func (a *App) askDefault(label, current string) (string, error) {
	if current != "" {
		label = fmt.Sprintf("%s [%s]", label, current)
	}

	v, err := a.ask(label)
	if err != nil || v != "" {
		return v, err
	}

	return current, nil
}

func (a *App) askPassword(label string) (string, error) {
	a.printf("%s: ", label)

	pw, err := a.readPassword()
	if err != nil {
		return "", err
	}

	return pw, nil
}

// terminalPassword reads without echo when the input is a terminal and
// falls back to a plain line otherwise (pipes, scripts).
func (a *App) terminalPassword() (string, error) {
	if f, ok := a.src.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pw, err := term.ReadPassword(int(f.Fd()))
		a.println()

		return string(pw), err
	}

	line, err := a.readLine()
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	return line, nil
}

// Confirm asks a yes/no question; anything but y or yes declines.
func (a *App) Confirm(_ context.Context, prompt string) bool {
	answer, err := a.ask(prompt + " [y/N]")
	if err != nil {
		return false
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
