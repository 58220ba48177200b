// Package gate decides which client routes need a signed-in identity.
package gate

import (
	"context"
	"errors"
	"path"
	"strings"
)

const HomeRoute = "/"

// ErrLoginRequired is what the default login affordance reports.
var ErrLoginRequired = errors.New("login required")

// View renders one route. Protected views find the provider in ctx.
type View func(ctx context.Context) error

type Gate struct {
	provider *Provider
	public   map[string]struct{}
	prompt   func(ctx context.Context, route string) error
}

type Option func(*Gate)

// WithPublic replaces the default public set.
func WithPublic(routes ...string) Option {
	return func(g *Gate) {
		g.public = map[string]struct{}{}
		for _, r := range routes {
			g.public[clean(r)] = struct{}{}
		}
	}
}

// WithLoginPrompt sets the affordance shown instead of a protected view
// when nobody is signed in.
func WithLoginPrompt(fn func(ctx context.Context, route string) error) Option {
	return func(g *Gate) { g.prompt = fn }
}

func New(p *Provider, opts ...Option) *Gate {
	g := &Gate{
		provider: p,
		public:   map[string]struct{}{HomeRoute: {}},
		prompt: func(context.Context, string) error {
			return ErrLoginRequired
		},
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

func (g *Gate) IsPublic(route string) bool {
	_, ok := g.public[clean(route)]
	return ok
}

// Render shows a public view as is. Any other view gets the provider in its
// context, or the login prompt when no identity is present.
func (g *Gate) Render(ctx context.Context, route string, view View) error {
	if g.IsPublic(route) {
		return view(ctx)
	}
	g.provider.Restore()
	if _, ok := g.provider.Identity(); !ok {
		return g.prompt(ctx, clean(route))
	}
	return view(WithProvider(ctx, g.provider))
}

type providerKey struct{}

func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// FromContext returns the provider a protected view was rendered with.
func FromContext(ctx context.Context) (*Provider, bool) {
	p, ok := ctx.Value(providerKey{}).(*Provider)
	return p, ok && p != nil
}

func clean(route string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		return HomeRoute
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return path.Clean(route)
}
