package gate

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/baharkarakas/program-catalog/internal/models"
)

// Backend is the part of the API the provider talks to.
type Backend interface {
	Login(ctx context.Context, c models.Credentials) (models.Identity, error)
	Logout(ctx context.Context) error
}

// Provider owns the client session: it restores it from the slot, logs in
// and out, and reports whether a transition is in flight.
type Provider struct {
	slot     Slot
	backend  Backend
	navigate func(route string)
	log      *slog.Logger

	mu        sync.Mutex
	identity  *models.Identity
	loading   bool
	restoring bool
	restored  bool
}

type ProviderOption func(*Provider)

// WithNavigate sets the redirect hook used after logout.
func WithNavigate(fn func(route string)) ProviderOption {
	return func(p *Provider) { p.navigate = fn }
}

func WithLogger(log *slog.Logger) ProviderOption {
	return func(p *Provider) { p.log = log }
}

func NewProvider(slot Slot, backend Backend, opts ...ProviderOption) *Provider {
	p := &Provider{
		slot:     slot,
		backend:  backend,
		navigate: func(string) {},
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Restore loads the stored session once. Unreadable or malformed state is
// discarded and cleared.
func (p *Provider) Restore() {
	p.mu.Lock()
	if p.restored || p.restoring {
		p.mu.Unlock()
		return
	}
	p.restoring = true
	p.loading = true
	p.mu.Unlock()

	id, ok := p.load()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.restoring = false
	p.loading = false
	if p.restored {
		// a login or logout finished first
		return
	}
	p.restored = true
	if ok {
		p.identity = &id
	}
}

func (p *Provider) load() (models.Identity, bool) {
	raw, err := p.slot.Load()
	if err != nil {
		p.log.Warn("session slot unreadable", "err", err)
		return models.Identity{}, false
	}
	if raw == nil {
		return models.Identity{}, false
	}
	id, ok := decodeIdentity(raw)
	if !ok {
		p.log.Warn("discarding malformed session")
		if err := p.slot.Clear(); err != nil {
			p.log.Warn("clear session slot", "err", err)
		}
	}
	return id, ok
}

func decodeIdentity(raw []byte) (models.Identity, bool) {
	var id models.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return models.Identity{}, false
	}
	if strings.TrimSpace(id.ID) == "" || strings.TrimSpace(id.Email) == "" {
		return models.Identity{}, false
	}
	return id, true
}

func (p *Provider) Identity() (models.Identity, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.identity == nil {
		return models.Identity{}, false
	}
	return *p.identity, true
}

// Loading is true during the initial restore and while a login or logout
// is in flight.
func (p *Provider) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *Provider) setLoading(v bool) {
	p.mu.Lock()
	p.loading = v
	p.mu.Unlock()
}

// Login reports whether the server accepted the credentials. Failures of
// any kind yield false.
func (p *Provider) Login(ctx context.Context, email, credential string) bool {
	p.setLoading(true)
	defer p.setLoading(false)

	id, err := p.backend.Login(ctx, models.Credentials{Email: email, Credential: credential})
	if err != nil {
		p.log.Debug("login rejected", "err", err)
		return false
	}

	raw, err := json.Marshal(id)
	if err == nil {
		err = p.slot.Save(raw)
	}
	if err != nil {
		p.log.Warn("session not persisted", "err", err)
	}

	p.mu.Lock()
	p.identity = &id
	p.restored = true
	p.mu.Unlock()
	return true
}

// Logout notifies the server, clears the session whatever the outcome and
// sends the client home.
func (p *Provider) Logout(ctx context.Context) {
	p.setLoading(true)
	if err := p.backend.Logout(ctx); err != nil {
		p.log.Debug("logout notification failed", "err", err)
	}

	p.mu.Lock()
	p.identity = nil
	p.restored = true
	p.loading = false
	p.mu.Unlock()
	if err := p.slot.Clear(); err != nil {
		p.log.Warn("clear session slot", "err", err)
	}
	p.navigate(HomeRoute)
}
