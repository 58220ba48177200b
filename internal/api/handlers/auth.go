package handlers

import (
	"io"
	"net/http"

	"github.com/baharkarakas/program-catalog/internal/api/httpx"
	"github.com/baharkarakas/program-catalog/internal/models"
)

type AuthHandler struct {
	base
	svc AuthService
}

func NewAuthHandler(svc AuthService, errs httpx.Errors) *AuthHandler {
	return &AuthHandler{base: base{errs: errs}, svc: svc}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var c models.Credentials
	if err := decode(w, r, &c); err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := h.svc.Login(r.Context(), c)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, id)
}

// Logout always succeeds; the server keeps no session to end.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r.Body, maxBody))
	httpx.WriteMessage(w, http.StatusOK, "logged out")
}
