// Package handlers adapts the catalog services to HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/baharkarakas/program-catalog/internal/api/httpx"
	"github.com/baharkarakas/program-catalog/internal/apperr"
	"github.com/baharkarakas/program-catalog/internal/catalog"
	"github.com/baharkarakas/program-catalog/internal/models"
)

type ProgramService interface {
	List(ctx context.Context) ([]models.Program, error)
	Get(ctx context.Context, id string) (models.Program, error)
	Create(ctx context.Context, d models.ProgramDraft) (models.Program, error)
	Update(ctx context.Context, id string, patch models.ProgramPatch) (models.Program, error)
	Delete(ctx context.Context, id string) error
	Catalog(ctx context.Context) (catalog.View, error)
	Embed(ctx context.Context, id string) (string, error)
}

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (models.User, error)
	Register(ctx context.Context, reg models.Registration) (models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error)
	Delete(ctx context.Context, id string) error
}

type AuthService interface {
	Login(ctx context.Context, c models.Credentials) (models.Identity, error)
}

const maxBody = 1 << 20

var errNoFields = apperr.Validation("body", "no fields to update")

// decode reads a JSON body into dst. Unknown fields are ignored.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("body", "request body is required")
		}
		return apperr.Validation("body", "invalid JSON body")
	}
	return nil
}

type base struct {
	errs httpx.Errors
}

func (b base) fail(w http.ResponseWriter, r *http.Request, err error) {
	b.errs.Write(w, r, err)
}
