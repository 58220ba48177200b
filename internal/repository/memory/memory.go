// Package memory keeps the collections in process memory. It backs STORE=memory
// and the service and HTTP tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/program-catalog/internal/models"
	repo "github.com/baharkarakas/program-catalog/internal/repository"
)

func NewRepositories() repo.Repositories {
	return repo.Repositories{
		Programs:  NewPrograms(),
		Users:     NewUsers(),
		AuditLogs: NewAuditLogs(),
		Ping:      func(context.Context) error { return nil },
	}
}

var now = func() time.Time { return time.Now().UTC() }

type Programs struct {
	mu    sync.RWMutex
	byID  map[string]models.Program
	order []string
}

func NewPrograms() *Programs {
	return &Programs{byID: map[string]models.Program{}}
}

func (r *Programs) List(_ context.Context) ([]models.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Program, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneProgram(r.byID[id]))
	}
	return out, nil
}

func (r *Programs) GetByID(_ context.Context, id string) (models.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return models.Program{}, repo.ErrNotFound
	}
	return cloneProgram(p), nil
}

func (r *Programs) Create(_ context.Context, p models.Program) (models.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, ok := r.byID[p.ID]; ok {
		return models.Program{}, repo.ErrDuplicate
	}
	p.CreatedAt = now()
	p.UpdatedAt = nil
	r.byID[p.ID] = cloneProgram(p)
	r.order = append(r.order, p.ID)
	return cloneProgram(p), nil
}

func (r *Programs) Update(_ context.Context, id string, patch models.ProgramPatch) (models.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return models.Program{}, repo.ErrNotFound
	}
	patch.Apply(&p)
	ts := now()
	p.UpdatedAt = &ts
	r.byID[id] = cloneProgram(p)
	return cloneProgram(p), nil
}

func (r *Programs) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.byID, id)
	r.order = removeID(r.order, id)
	return nil
}

func cloneProgram(p models.Program) models.Program {
	if p.VideoURL != nil {
		v := *p.VideoURL
		p.VideoURL = &v
	}
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		p.UpdatedAt = &t
	}
	return p
}

// Users enforces email uniqueness under its lock, so the check-then-insert
// window of the service never produces duplicates here.
type Users struct {
	mu    sync.RWMutex
	byID  map[string]models.User
	order []string
}

func NewUsers() *Users {
	return &Users{byID: map[string]models.User{}}
}

func (r *Users) List(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneUser(r.byID[id]))
	}
	return out, nil
}

func (r *Users) GetByID(_ context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.findEmail(email); ok {
		return cloneUser(u), nil
	}
	return models.User{}, repo.ErrNotFound
}

func (r *Users) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.findEmail(email)
	return ok, nil
}

func (r *Users) findEmail(email string) (models.User, bool) {
	key := models.NormalizeEmail(email)
	for _, u := range r.byID {
		if models.NormalizeEmail(u.Email) == key {
			return u, true
		}
	}
	return models.User{}, false
}

func (r *Users) Create(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.findEmail(u.Email); dup {
		return models.User{}, repo.ErrDuplicate
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.RegisteredAt.IsZero() {
		u.RegisteredAt = now()
	}
	u.UpdatedAt = nil
	r.byID[u.ID] = cloneUser(u)
	r.order = append(r.order, u.ID)
	return cloneUser(u), nil
}

func (r *Users) Update(_ context.Context, id string, patch models.UserPatch) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	if patch.Email != nil {
		if other, dup := r.findEmail(*patch.Email); dup && other.ID != id {
			return models.User{}, repo.ErrDuplicate
		}
	}
	patch.Apply(&u)
	ts := now()
	u.UpdatedAt = &ts
	r.byID[id] = cloneUser(u)
	return cloneUser(u), nil
}

func (r *Users) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.byID, id)
	r.order = removeID(r.order, id)
	return nil
}

func cloneUser(u models.User) models.User {
	if u.UpdatedAt != nil {
		t := *u.UpdatedAt
		u.UpdatedAt = &t
	}
	return u
}

type AuditLogs struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func NewAuditLogs() *AuditLogs { return &AuditLogs{} }

func (r *AuditLogs) Create(_ context.Context, l models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now()
	}
	r.entries = append(r.entries, l)
	return nil
}

func (r *AuditLogs) ListByEntity(_ context.Context, entityType, entityID string) ([]models.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.AuditLog{}
	for _, l := range r.entries {
		if l.EntityType == entityType && l.EntityID == entityID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
