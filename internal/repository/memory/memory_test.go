package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/program-catalog/internal/models"
	repo "github.com/baharkarakas/program-catalog/internal/repository"
)

func TestProgramsCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewPrograms()

	created, err := r.Create(ctx, models.Program{Title: "Law", Description: "Civil law"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.UpdatedAt)

	updated, err := r.Update(ctx, created.ID, models.ProgramPatch{VideoURL: models.Ptr("https://youtu.be/abc123xyz00")})
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, "Law", updated.Title)

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, r.Delete(ctx, created.ID))
	assert.ErrorIs(t, r.Delete(ctx, created.ID), repo.ErrNotFound)
	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	_, err = r.Update(ctx, created.ID, models.ProgramPatch{})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestProgramsListKeepsInsertionOrderAndCopies(t *testing.T) {
	ctx := context.Background()
	r := NewPrograms()
	for _, title := range []string{"A", "B", "C"} {
		_, err := r.Create(ctx, models.Program{Title: title, Description: "d", VideoURL: models.Ptr("v")})
		require.NoError(t, err)
	}

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "A", list[0].Title)
	assert.Equal(t, "C", list[2].Title)

	*list[0].VideoURL = "mutated"
	again, _ := r.List(ctx)
	assert.Equal(t, "v", *again[0].VideoURL)
}

func TestProgramsListEmptyIsNotNil(t *testing.T) {
	list, err := NewPrograms().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestUsersEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	r := NewUsers()

	u, err := r.Create(ctx, models.User{FullName: "Ana", Email: "ana@uni.edu", Phone: "1", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, u.RegisteredAt.IsZero())

	exists, err := r.ExistsByEmail(ctx, "ANA@Uni.edu")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := r.GetByEmail(ctx, "Ana@UNI.EDU")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = r.Create(ctx, models.User{FullName: "Other", Email: "ANA@UNI.EDU"})
	assert.ErrorIs(t, err, repo.ErrDuplicate)
}

func TestUsersUpdateKeepsRegistrationTime(t *testing.T) {
	ctx := context.Background()
	r := NewUsers()
	u, err := r.Create(ctx, models.User{FullName: "Ana", Email: "ana@uni.edu", Role: models.RoleAspirant})
	require.NoError(t, err)
	other, err := r.Create(ctx, models.User{FullName: "Luis", Email: "luis@uni.edu", Role: models.RoleAspirant})
	require.NoError(t, err)

	updated, err := r.Update(ctx, u.ID, models.UserPatch{Phone: models.Ptr("300"), Role: models.Ptr(models.RoleAdmissions)})
	require.NoError(t, err)
	assert.Equal(t, u.RegisteredAt, updated.RegisteredAt)
	assert.Equal(t, "300", updated.Phone)
	assert.Equal(t, models.RoleAdmissions, updated.Role)
	require.NotNil(t, updated.UpdatedAt)

	_, err = r.Update(ctx, other.ID, models.UserPatch{Email: models.Ptr("ana@uni.edu")})
	assert.ErrorIs(t, err, repo.ErrDuplicate)

	require.NoError(t, r.Delete(ctx, u.ID))
	assert.ErrorIs(t, r.Delete(ctx, u.ID), repo.ErrNotFound)
}

func TestAuditLogs(t *testing.T) {
	ctx := context.Background()
	r := NewAuditLogs()
	require.NoError(t, r.Create(ctx, models.AuditLog{EntityType: models.EntityProgram, EntityID: "p1", Action: "created"}))
	require.NoError(t, r.Create(ctx, models.AuditLog{EntityType: models.EntityUser, EntityID: "p1", Action: "created"}))
	require.NoError(t, r.Create(ctx, models.AuditLog{EntityType: models.EntityProgram, EntityID: "p1", Action: "deleted"}))

	logs, err := r.ListByEntity(ctx, models.EntityProgram, "p1")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "created", logs[0].Action)
	assert.Equal(t, "deleted", logs[1].Action)
	assert.NotEmpty(t, logs[0].ID)
}
