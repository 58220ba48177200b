package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/program-catalog/internal/models"
	repo "github.com/baharkarakas/program-catalog/internal/repository"
)

type programsRepo struct{ pool *pgxpool.Pool }

const programCols = `id, title, description, modality, duration, image, faculty, video_url, created_at, updated_at`

func scanProgram(row pgx.Row) (models.Program, error) {
	var p models.Program
	var modality string
	err := row.Scan(&p.ID, &p.Title, &p.Description, &modality, &p.Duration, &p.Image,
		&p.Faculty, &p.VideoURL, &p.CreatedAt, &p.UpdatedAt)
	p.Modality = models.Modality(modality)
	return p, err
}

func (r *programsRepo) List(ctx context.Context) ([]models.Program, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+programCols+` FROM programs ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Program{}
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *programsRepo) GetByID(ctx context.Context, id string) (models.Program, error) {
	p, err := scanProgram(r.pool.QueryRow(ctx, `SELECT `+programCols+` FROM programs WHERE id=$1`, id))
	return p, mapErr(err)
}

func (r *programsRepo) Create(ctx context.Context, p models.Program) (models.Program, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	created, err := scanProgram(r.pool.QueryRow(ctx,
		`INSERT INTO programs (id, title, description, modality, duration, image, faculty, video_url)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING `+programCols,
		p.ID, p.Title, p.Description, string(p.Modality), p.Duration, p.Image, p.Faculty, p.VideoURL,
	))
	return created, mapErr(err)
}

// Update writes only the fields present in the patch. video_url is set when
// the patch carries it, with "" stored as NULL.
func (r *programsRepo) Update(ctx context.Context, id string, patch models.ProgramPatch) (models.Program, error) {
	var modality *string
	if patch.Modality != nil {
		m := string(*patch.Modality)
		modality = &m
	}
	updated, err := scanProgram(r.pool.QueryRow(ctx,
		`UPDATE programs SET
		    title       = COALESCE($2::text, title),
		    description = COALESCE($3::text, description),
		    modality    = COALESCE($4::text, modality),
		    duration    = COALESCE($5::text, duration),
		    image       = COALESCE($6::text, image),
		    faculty     = COALESCE($7::text, faculty),
		    video_url   = CASE WHEN $8::boolean THEN NULLIF($9::text, '') ELSE video_url END,
		    updated_at  = now()
		  WHERE id = $1
		  RETURNING `+programCols,
		id, patch.Title, patch.Description, modality, patch.Duration, patch.Image, patch.Faculty,
		patch.VideoURL != nil, patch.VideoURL,
	))
	return updated, mapErr(err)
}

func (r *programsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM programs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
