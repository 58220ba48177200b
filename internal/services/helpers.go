package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/baharkarakas/program-catalog/internal/apperr"
	repo "github.com/baharkarakas/program-catalog/internal/repository"
	"github.com/baharkarakas/program-catalog/internal/validate"
)

// checkID rejects ids that are not uuids before they reach storage.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.Validation("id", "invalid id")
	}
	return nil
}

func storeErr(what string, err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return apperr.NotFound(what + " not found")
	case errors.Is(err, repo.ErrDuplicate):
		return apperr.Conflict("email already registered")
	}
	return apperr.Internal("storage failure", err)
}

func invalid(errs validate.Errs) error {
	e := apperr.Validation(errs[0].Field, errs.Error())
	e.Details = errs
	return e
}

func trim(s string) string { return strings.TrimSpace(s) }
