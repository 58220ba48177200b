package gate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/program-catalog/internal/models"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeBackend struct {
	login  func(ctx context.Context, c models.Credentials) (models.Identity, error)
	logout func(ctx context.Context) error
	during func()
}

func (f *fakeBackend) Login(ctx context.Context, c models.Credentials) (models.Identity, error) {
	if f.during != nil {
		f.during()
	}
	return f.login(ctx, c)
}

func (f *fakeBackend) Logout(ctx context.Context) error {
	if f.during != nil {
		f.during()
	}
	if f.logout == nil {
		return nil
	}
	return f.logout(ctx)
}

var ana = models.Identity{ID: "u1", FullName: "Ana", Email: "ana@uni.edu", Token: "tok"}

func acceptAna() *fakeBackend {
	return &fakeBackend{login: func(_ context.Context, c models.Credentials) (models.Identity, error) {
		if c.Email == "ana@uni.edu" && c.Credential == "s3cret" {
			return ana, nil
		}
		return models.Identity{}, errors.New("invalid email or credential")
	}}
}

func TestRestore(t *testing.T) {
	raw, _ := json.Marshal(ana)
	tests := []struct {
		name    string
		stored  []byte
		want    bool
		cleared bool
	}{
		{"empty", nil, false, false},
		{"valid", raw, true, false},
		{"not json", []byte("{oops"), false, true},
		{"missing id", []byte(`{"email":"a@b.co"}`), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := &MemorySlot{}
			if tt.stored != nil {
				require.NoError(t, slot.Save(tt.stored))
			}
			p := NewProvider(slot, acceptAna(), WithLogger(quiet))
			p.Restore()
			id, ok := p.Identity()
			assert.Equal(t, tt.want, ok)
			if ok {
				assert.Equal(t, ana, id)
			}
			assert.False(t, p.Loading())
			left, _ := slot.Load()
			assert.Equal(t, tt.cleared, left == nil && tt.stored != nil)
		})
	}
}

func TestLogin(t *testing.T) {
	slot := &MemorySlot{}
	b := acceptAna()
	p := NewProvider(slot, b, WithLogger(quiet))
	b.during = func() { assert.True(t, p.Loading()) }

	assert.False(t, p.Login(context.Background(), "ana@uni.edu", "wrong"))
	_, ok := p.Identity()
	assert.False(t, ok)
	stored, _ := slot.Load()
	assert.Nil(t, stored)

	assert.True(t, p.Login(context.Background(), "ana@uni.edu", "s3cret"))
	id, ok := p.Identity()
	require.True(t, ok)
	assert.Equal(t, "Ana", id.FullName)
	assert.False(t, p.Loading())

	stored, _ = slot.Load()
	var persisted models.Identity
	require.NoError(t, json.Unmarshal(stored, &persisted))
	assert.Equal(t, ana, persisted)
}

func TestLogoutAlwaysClears(t *testing.T) {
	slot := &MemorySlot{}
	b := acceptAna()
	b.logout = func(context.Context) error { return errors.New("network down") }
	var went string
	p := NewProvider(slot, b, WithLogger(quiet), WithNavigate(func(r string) { went = r }))
	require.True(t, p.Login(context.Background(), "ana@uni.edu", "s3cret"))

	p.Logout(context.Background())
	_, ok := p.Identity()
	assert.False(t, ok)
	stored, _ := slot.Load()
	assert.Nil(t, stored)
	assert.Equal(t, "/", went)
	assert.False(t, p.Loading())
}

func TestGateRender(t *testing.T) {
	p := NewProvider(&MemorySlot{}, acceptAna(), WithLogger(quiet))
	g := New(p)

	assert.True(t, g.IsPublic("/"))
	assert.True(t, g.IsPublic(""))
	assert.False(t, g.IsPublic("/admin/programs"))

	var sawProvider bool
	view := func(ctx context.Context) error {
		_, sawProvider = FromContext(ctx)
		return nil
	}

	require.NoError(t, g.Render(context.Background(), "/", view))
	assert.False(t, sawProvider)

	err := g.Render(context.Background(), "/admin/programs/", view)
	assert.ErrorIs(t, err, ErrLoginRequired)

	require.True(t, p.Login(context.Background(), "ana@uni.edu", "s3cret"))
	require.NoError(t, g.Render(context.Background(), "/admin/programs", view))
	assert.True(t, sawProvider)
}

func TestGateCustomPrompt(t *testing.T) {
	p := NewProvider(&MemorySlot{}, acceptAna(), WithLogger(quiet))
	var prompted string
	g := New(p, WithPublic("/", "/register"), WithLoginPrompt(func(_ context.Context, route string) error {
		prompted = route
		return nil
	}))
	assert.True(t, g.IsPublic("register"))
	require.NoError(t, g.Render(context.Background(), "/admin/users", func(context.Context) error {
		t.Fatal("protected view rendered without identity")
		return nil
	}))
	assert.Equal(t, "/admin/users", prompted)
}

func TestFileSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := FileSlot{Path: path}

	got, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Save([]byte(`{"id":"u1"}`)))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, `{"id":"u1"}`, string(got))

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	got, _ = s.Load()
	assert.Nil(t, got)
}
