package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/baharkarakas/program-catalog/internal/apperr"
	"github.com/baharkarakas/program-catalog/internal/cache"
	"github.com/baharkarakas/program-catalog/internal/catalog"
	"github.com/baharkarakas/program-catalog/internal/metrics"
	"github.com/baharkarakas/program-catalog/internal/models"
	repo "github.com/baharkarakas/program-catalog/internal/repository"
	"github.com/baharkarakas/program-catalog/internal/validate"
)

type ProgramService struct {
	r     repo.Programs
	cache cache.Programs
	audit *Auditor
	log   *slog.Logger
}

func NewProgramService(r repo.Programs, c cache.Programs, a *Auditor, log *slog.Logger) *ProgramService {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &ProgramService{r: r, cache: c, audit: a, log: log}
}

// List reads through the cache; cache failures fall back to the store.
func (s *ProgramService) List(ctx context.Context) ([]models.Program, error) {
	list, err := s.cache.Get(ctx)
	switch {
	case err == nil:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return list, nil
	case errors.Is(err, cache.ErrMiss):
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		s.log.Warn("program cache read failed", "err", err)
	}

	list, err = s.r.List(ctx)
	if err != nil {
		s.log.Error("list programs", "err", err)
		return nil, storeErr("program", err)
	}
	if err := s.cache.Set(ctx, list); err != nil {
		s.log.Warn("program cache write failed", "err", err)
	}
	return list, nil
}

func (s *ProgramService) Get(ctx context.Context, id string) (models.Program, error) {
	if err := checkID(id); err != nil {
		return models.Program{}, err
	}
	p, err := s.r.GetByID(ctx, id)
	if err != nil {
		return models.Program{}, s.fail("get", id, err)
	}
	return p, nil
}

func (s *ProgramService) Create(ctx context.Context, d models.ProgramDraft) (models.Program, error) {
	if errs := validate.Struct(d); errs != nil {
		return models.Program{}, invalid(errs)
	}
	p, err := s.r.Create(ctx, d.Program())
	metrics.ProgramOps.WithLabelValues("create", metrics.Result(err)).Inc()
	if err != nil {
		return models.Program{}, s.fail("create", "", err)
	}
	s.changed(ctx)
	s.audit.Record(models.EntityProgram, p.ID, "created", map[string]any{"title": p.Title})
	return p, nil
}

// Update applies the fields present in patch. Blank text fields are
// ignored; a blank videoUrl clears the video.
func (s *ProgramService) Update(ctx context.Context, id string, patch models.ProgramPatch) (models.Program, error) {
	if err := checkID(id); err != nil {
		return models.Program{}, err
	}
	patch = patch.Normalize()
	if patch.Modality != nil && !patch.Modality.Valid() {
		return models.Program{}, apperr.Validation("modality", "must be one of: Presencial, Virtual, Híbrida")
	}

	p, err := s.r.Update(ctx, id, patch)
	metrics.ProgramOps.WithLabelValues("update", metrics.Result(err)).Inc()
	if err != nil {
		return models.Program{}, s.fail("update", id, err)
	}
	s.changed(ctx)
	s.audit.Record(models.EntityProgram, id, "updated", map[string]any{"fields": patch.Fields()})
	return p, nil
}

func (s *ProgramService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	err := s.r.Delete(ctx, id)
	metrics.ProgramOps.WithLabelValues("delete", metrics.Result(err)).Inc()
	if err != nil {
		return s.fail("delete", id, err)
	}
	s.changed(ctx)
	s.audit.Record(models.EntityProgram, id, "deleted", nil)
	return nil
}

func (s *ProgramService) Catalog(ctx context.Context) (catalog.View, error) {
	list, err := s.List(ctx)
	if err != nil {
		return catalog.View{}, err
	}
	return catalog.Build(list), nil
}

// Embed returns the embeddable player URL of a program's video.
func (s *ProgramService) Embed(ctx context.Context, id string) (string, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if p.VideoURL == nil || strings.TrimSpace(*p.VideoURL) == "" {
		return "", apperr.NotFound("program has no video")
	}
	u, ok := catalog.EmbedURL(*p.VideoURL)
	if !ok {
		return "", apperr.NotFound("video is not embeddable")
	}
	return u, nil
}

func (s *ProgramService) changed(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("program cache invalidate failed", "err", err)
	}
}

func (s *ProgramService) fail(op, id string, err error) error {
	if !errors.Is(err, repo.ErrNotFound) {
		s.log.Error("program "+op, "id", id, "err", err)
	}
	return storeErr("program", err)
}
