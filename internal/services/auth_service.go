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

var errBadCredentials = apperr.Auth("invalid email or credential")

type AuthService struct {
	users  repo.Users
	v      auth.CredentialVerifier
	tokens *auth.TokenManager
	log    *slog.Logger
}

func NewAuthService(users repo.Users, v auth.CredentialVerifier, tm *auth.TokenManager, log *slog.Logger) *AuthService {
	if v == nil {
		v = auth.PlainVerifier{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{users: users, v: v, tokens: tm, log: log}
}

// Login checks the credential and returns the session projection with a
// freshly issued token. Unknown emails and wrong credentials look the same.
func (s *AuthService) Login(ctx context.Context, c models.Credentials) (models.Identity, error) {
	if f := validate.Required("email", c.Email); f != nil {
		return models.Identity{}, invalid(validate.Errs{*f})
	}
	if f := validate.Required("credential", c.Credential); f != nil {
		return models.Identity{}, invalid(validate.Errs{*f})
	}

	u, err := s.users.GetByEmail(ctx, models.NormalizeEmail(c.Email))
	if errors.Is(err, repo.ErrNotFound) {
		metrics.Logins.WithLabelValues("denied").Inc()
		return models.Identity{}, errBadCredentials
	}
	if err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		s.log.Error("login lookup", "err", err)
		return models.Identity{}, storeErr("user", err)
	}
	if !s.v.Verify(u.Credential, c.Credential) {
		metrics.Logins.WithLabelValues("denied").Inc()
		return models.Identity{}, errBadCredentials
	}

	id := u.Identity()
	if s.tokens != nil {
		tok, _, err := s.tokens.Generate(u)
		if err != nil {
			metrics.Logins.WithLabelValues("error").Inc()
			return models.Identity{}, apperr.Internal("issue token", err)
		}
		id.Token = tok
	}
	metrics.Logins.WithLabelValues("ok").Inc()
	s.log.Info("login", "user_id", u.ID, "role", string(u.Role))
	return id, nil
}
