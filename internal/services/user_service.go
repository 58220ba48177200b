package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/baharkarakas/program-catalog/internal/apperr"
	"github.com/baharkarakas/program-catalog/internal/auth"
	"github.com/baharkarakas/program-catalog/internal/metrics"
	"github.com/baharkarakas/program-catalog/internal/models"
	repo "github.com/baharkarakas/program-catalog/internal/repository"
	"github.com/baharkarakas/program-catalog/internal/validate"
)

type UserService struct {
	r     repo.Users
	v     auth.CredentialVerifier
	audit *Auditor
	log   *slog.Logger
}

func NewUserService(r repo.Users, v auth.CredentialVerifier, a *Auditor, log *slog.Logger) *UserService {
	if v == nil {
		v = auth.PlainVerifier{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &UserService{r: r, v: v, audit: a, log: log}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	list, err := s.r.List(ctx)
	if err != nil {
		s.log.Error("list users", "err", err)
		return nil, storeErr("user", err)
	}
	return list, nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	if err := checkID(id); err != nil {
		return models.User{}, err
	}
	u, err := s.r.GetByID(ctx, id)
	if err != nil {
		return models.User{}, s.fail("get", id, err)
	}
	return u, nil
}

// Register creates a user from the public sign-up form. The existence check
// runs before the insert; storage may still report a duplicate when a unique
// index is present.
func (s *UserService) Register(ctx context.Context, reg models.Registration) (models.User, error) {
	if errs := validate.Struct(reg); errs != nil {
		return models.User{}, invalid(errs)
	}
	email := models.NormalizeEmail(reg.Email)

	exists, err := s.r.ExistsByEmail(ctx, email)
	if err != nil {
		return models.User{}, s.fail("exists", "", err)
	}
	if exists {
		return models.User{}, apperr.Conflict("email already registered")
	}

	u := models.User{
		FullName: trim(reg.FullName),
		Email:    email,
		Phone:    trim(reg.Phone),
		Role:     reg.Role,
	}
	if reg.Role.Staff() && trim(reg.Credential) != "" {
		if u.Credential, err = s.v.Prepare(trim(reg.Credential)); err != nil {
			return models.User{}, apperr.Internal("prepare credential", err)
		}
	}

	created, err := s.r.Create(ctx, u)
	if err != nil {
		return models.User{}, s.fail("create", "", err)
	}
	metrics.Registrations.WithLabelValues(string(created.Role)).Inc()
	s.audit.Record(models.EntityUser, created.ID, "registered", map[string]any{"role": string(created.Role)})
	return created, nil
}

func (s *UserService) Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	if err := checkID(id); err != nil {
		return models.User{}, err
	}
	patch = patch.Normalize()
	if patch.Role != nil && !patch.Role.Valid() {
		return models.User{}, apperr.Validation("role", "must be one of: aspirant, admissions, admin")
	}
	if patch.Email != nil {
		if !validate.EmailShape(*patch.Email) {
			return models.User{}, apperr.Validation("email", "invalid email address")
		}
		other, err := s.r.GetByEmail(ctx, *patch.Email)
		switch {
		case err == nil && other.ID != id:
			return models.User{}, apperr.Conflict("email already registered")
		case err != nil && !errors.Is(err, repo.ErrNotFound):
			return models.User{}, s.fail("lookup", id, err)
		}
	}
	if patch.Credential != nil {
		staff, err := s.staffAfter(ctx, id, patch.Role)
		if err != nil {
			return models.User{}, err
		}
		if !staff {
			return models.User{}, apperr.Validation("credential", "only admissions and admin users hold a credential")
		}
		stored, err := s.v.Prepare(*patch.Credential)
		if err != nil {
			return models.User{}, apperr.Internal("prepare credential", err)
		}
		patch.Credential = &stored
	}

	if patch.Role != nil && !patch.Role.Staff() && patch.Credential == nil {
		// demoted users lose their credential
		patch.Credential = new(string)
	}

	u, err := s.r.Update(ctx, id, patch)
	if err != nil {
		return models.User{}, s.fail("update", id, err)
	}
	s.audit.Record(models.EntityUser, id, "updated", map[string]any{"fields": patch.Fields()})
	return u, nil
}

// staffAfter reports whether the user holds a staff role once role is applied.
func (s *UserService) staffAfter(ctx context.Context, id string, role *models.Role) (bool, error) {
	if role != nil {
		return role.Staff(), nil
	}
	u, err := s.r.GetByID(ctx, id)
	if err != nil {
		return false, s.fail("lookup", id, err)
	}
	return u.Role.Staff(), nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, id); err != nil {
		return s.fail("delete", id, err)
	}
	s.audit.Record(models.EntityUser, id, "deleted", nil)
	return nil
}

func (s *UserService) fail(op, id string, err error) error {
	if !errors.Is(err, repo.ErrNotFound) && !errors.Is(err, repo.ErrDuplicate) {
		s.log.Error("user "+op, "id", id, "err", err)
	}
	return storeErr("user", err)
}
