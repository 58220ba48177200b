package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/program-catalog/internal/api/httpx"
	"github.com/baharkarakas/program-catalog/internal/models"
)

type ProgramHandler struct {
	base
	svc ProgramService
}

func NewProgramHandler(svc ProgramService, errs httpx.Errors) *ProgramHandler {
	return &ProgramHandler{base: base{errs: errs}, svc: svc}
}

func (h *ProgramHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, list)
}

func (h *ProgramHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, p)
}

func (h *ProgramHandler) Create(w http.ResponseWriter, r *http.Request) {
	var d models.ProgramDraft
	if err := decode(w, r, &d); err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.svc.Create(r.Context(), d)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, p)
}

// Update takes a partial body. A body without any recognised field is
// rejected; `"videoUrl": ""` clears the video.
func (h *ProgramHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.ProgramPatch
	if err := decode(w, r, &patch); err != nil {
		h.fail(w, r, err)
		return
	}
	if len(patch.Fields()) == 0 {
		h.fail(w, r, errNoFields)
		return
	}
	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, p)
}

func (h *ProgramHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "program deleted")
}

func (h *ProgramHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Catalog(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, view)
}

func (h *ProgramHandler) Embed(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Embed(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, map[string]string{"embedUrl": u})
}
