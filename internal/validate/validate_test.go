package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/program-catalog/internal/models"
)

func TestEmailShape(t *testing.T) {
	valid := []string{"ana@uni.edu", "a.b+c@mail.example.co", "X@Y.Z"}
	invalid := []string{"", "ana", "ana@uni", "ana @uni.edu", "@uni.edu", "ana@@uni.edu"}

	for _, s := range valid {
		assert.True(t, EmailShape(s), s)
	}
	for _, s := range invalid {
		assert.False(t, EmailShape(s), s)
	}
}

func TestStructProgramDraft(t *testing.T) {
	errs := Struct(models.ProgramDraft{Title: "  ", Modality: "Online"})
	require.Len(t, errs, 3)
	assert.Equal(t, []string{"title", "description", "modality"}, errs.Fields())
	assert.Equal(t, "required", errs[0].Msg)
	assert.Contains(t, errs[2].Msg, "Híbrida")

	assert.Nil(t, Struct(models.ProgramDraft{Title: "Law", Description: "Civil law", Modality: models.ModalityHybrid}))
	assert.Nil(t, Struct(models.ProgramDraft{Title: "Law", Description: "Civil law"}))
}

func TestStructRegistration(t *testing.T) {
	errs := Struct(models.Registration{FullName: "Ana", Email: "not-an-email", Phone: "300 123 4567"})
	require.Len(t, errs, 2)
	assert.Equal(t, "email: invalid email address; role: required", errs.Error())

	ok := models.Registration{FullName: "Ana", Email: "ana@uni.edu", Phone: "300", Role: models.RoleAspirant}
	assert.Nil(t, Struct(ok))
}

func TestRequired(t *testing.T) {
	assert.Nil(t, Required("phone", "300"))
	ef := Required("phone", "  ")
	require.NotNil(t, ef)
	assert.Equal(t, "phone", ef.Field)
}
