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

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/baharkarakas/program-catalog/internal/client"
	"github.com/baharkarakas/program-catalog/internal/gate"
	"github.com/baharkarakas/program-catalog/internal/logger"
)

// Routes each command renders. Only the public ones work without a session.
const (
	routeHome     = "/"
	routeLogin    = "/login"
	routeRegister = "/register"
	routeAccount  = "/account"
	routePrograms = "/admin/programs"
	routeProgram  = "/programs/detail"
	routeUsers    = "/admin/users"
)

var publicRoutes = []string{routeHome, routeLogin, routeRegister}

// app is what one command invocation works with.
type app struct {
	opts     *RootOptions
	out      io.Writer
	in       io.Reader
	lines    *bufio.Reader
	log      *slog.Logger
	api      *client.Client
	provider *gate.Provider
	gate     *gate.Gate
	home     bool
}

func newApp(cmd *cobra.Command, opts *RootOptions) *app {
	a := &app{
		opts: opts,
		out:  cmd.OutOrStdout(),
		in:   cmd.InOrStdin(),
		log:  logger.NewCLI(cmd.ErrOrStderr(), opts.Verbose),
		api:  client.New(opts.APIURL),
	}
	a.provider = gate.NewProvider(
		gate.FileSlot{Path: opts.SessionFile},
		a.api,
		gate.WithLogger(a.log),
		gate.WithNavigate(func(route string) { a.home = route == routeHome }),
	)
	a.gate = gate.New(a.provider,
		gate.WithPublic(publicRoutes...),
		gate.WithLoginPrompt(func(_ context.Context, route string) error {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s needs a session: run \"catalogctl login\" first\n", route)
			return gate.ErrLoginRequired
		}),
	)
	return a
}

// authed returns a client carrying the session token of a protected view.
func (a *app) authed(ctx context.Context) *client.Client {
	if p, ok := gate.FromContext(ctx); ok {
		if id, ok := p.Identity(); ok && id.Token != "" {
			return a.api.WithToken(id.Token)
		}
	}
	return a.api
}

func (a *app) render(ctx context.Context, route string, view gate.View) error {
	return a.gate.Render(ctx, route, view)
}

func (a *app) printer() *printer { return &printer{w: a.out, format: a.opts.Format} }

// readSecret prompts without echo on a terminal, or reads a line otherwise.
func (a *app) readSecret(prompt string) (string, error) {
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.out)
		return string(b), err
	}
	return a.readLine("")
}

func (a *app) readLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(a.out, prompt)
	}
	if a.lines == nil {
		a.lines = bufio.NewReader(a.in)
	}
	line, err := a.lines.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm is the explicit confirmation step before destructive requests.
func (a *app) confirm(yes bool, question string) (bool, error) {
	if yes {
		return true, nil
	}
	ans, err := a.readLine(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(ans, "y") || strings.EqualFold(ans, "yes"), nil
}
