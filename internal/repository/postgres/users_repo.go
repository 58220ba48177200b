package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/program-catalog/internal/models"
	repo "github.com/baharkarakas/program-catalog/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repo.Users {
	return &usersRepo{pool: pool}
}

const userCols = `id, full_name, email, phone, role, credential, registered_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	var role string
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &role, &u.Credential, &u.RegisteredAt, &u.UpdatedAt)
	u.Role = models.Role(role)
	return u, err
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userCols+` FROM users ORDER BY registered_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
	return u, mapErr(err)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE lower(email) = lower($1) ORDER BY registered_at LIMIT 1`, email))
	return u, mapErr(err)
}

func (r *usersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`, email).Scan(&exists)
	return exists, err
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	created, err := scanUser(r.pool.QueryRow(ctx,
		`INSERT INTO users (id, full_name, email, phone, role, credential)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING `+userCols,
		u.ID, u.FullName, u.Email, u.Phone, string(u.Role), u.Credential,
	))
	return created, mapErr(err)
}

func (r *usersRepo) Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	var role *string
	if patch.Role != nil {
		s := string(*patch.Role)
		role = &s
	}
	updated, err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET
		    full_name  = COALESCE($2::text, full_name),
		    email      = COALESCE($3::text, email),
		    phone      = COALESCE($4::text, phone),
		    role       = COALESCE($5::text, role),
		    credential = COALESCE($6::text, credential),
		    updated_at = now()
		  WHERE id = $1
		  RETURNING `+userCols,
		id, patch.FullName, patch.Email, patch.Phone, role, patch.Credential,
	))
	return updated, mapErr(err)
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
