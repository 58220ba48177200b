package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramPatchLeavesOmittedFieldsAlone(t *testing.T) {
	video := "https://youtu.be/old"
	prog := Program{
		ID:          "p1",
		Title:       "Systems Engineering",
		Description: "Software and infrastructure",
		Modality:    ModalityOnSite,
		Duration:    "10 semesters",
		Image:       "https://cdn.example.edu/systems.png",
		Faculty:     "Engineering",
		VideoURL:    &video,
	}
	before := prog

	var patch ProgramPatch
	require.NoError(t, json.Unmarshal([]byte(`{"duration":"9 semesters","title":"   ","faculty":""}`), &patch))
	patch.Normalize().Apply(&prog)

	assert.Equal(t, "9 semesters", prog.Duration)
	assert.Equal(t, before.Title, prog.Title)
	assert.Equal(t, before.Faculty, prog.Faculty)
	assert.Equal(t, before.Description, prog.Description)
	assert.Equal(t, before.Modality, prog.Modality)
	assert.Equal(t, before.Image, prog.Image)
	require.NotNil(t, prog.VideoURL)
	assert.Equal(t, "https://youtu.be/old", *prog.VideoURL)
}

func TestProgramPatchVideoURL(t *testing.T) {
	t.Run("explicit empty clears the video", func(t *testing.T) {
		prog := Program{Title: "Law", VideoURL: Ptr("https://youtu.be/abc")}
		var patch ProgramPatch
		require.NoError(t, json.Unmarshal([]byte(`{"videoUrl":""}`), &patch))

		patch.Normalize().Apply(&prog)
		assert.Nil(t, prog.VideoURL)
		assert.Equal(t, "Law", prog.Title)
	})

	t.Run("absent keeps the video", func(t *testing.T) {
		prog := Program{Title: "Law", VideoURL: Ptr("https://youtu.be/abc")}
		ProgramPatch{Title: Ptr("Civil Law")}.Normalize().Apply(&prog)
		require.NotNil(t, prog.VideoURL)
		assert.Equal(t, "https://youtu.be/abc", *prog.VideoURL)
		assert.Equal(t, "Civil Law", prog.Title)
	})

	t.Run("marshal keeps an explicit empty value", func(t *testing.T) {
		b, err := json.Marshal(ProgramPatch{VideoURL: Ptr("")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"videoUrl":""}`, string(b))
	})
}

func TestProgramPatchFields(t *testing.T) {
	p := ProgramPatch{Title: Ptr("x"), VideoURL: Ptr("")}
	assert.Equal(t, []string{"title", "videoUrl"}, p.Fields())
	assert.Empty(t, ProgramPatch{}.Fields())
}

func TestProgramDraftDefaults(t *testing.T) {
	p := ProgramDraft{Title: " Systems Engineering ", Description: "..."}.Program()
	assert.Equal(t, "Systems Engineering", p.Title)
	assert.Equal(t, Modality(""), p.Modality)
	assert.Empty(t, p.Image)
	assert.Nil(t, p.VideoURL)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "videoUrl")
}

func TestModalityValid(t *testing.T) {
	for _, m := range []Modality{"", ModalityOnSite, ModalityVirtual, ModalityHybrid} {
		assert.True(t, m.Valid(), m)
	}
	assert.False(t, Modality("Hybrid").Valid())
}

func TestUserPatchNormalize(t *testing.T) {
	p := UserPatch{
		FullName:   Ptr(""),
		Email:      Ptr("  Ana.Gomez@Uni.EDU "),
		Role:       Ptr(Role("")),
		Credential: Ptr(""),
	}.Normalize()

	assert.Nil(t, p.FullName)
	assert.Nil(t, p.Role)
	assert.Nil(t, p.Credential)
	require.NotNil(t, p.Email)
	assert.Equal(t, "ana.gomez@uni.edu", *p.Email)
	assert.Equal(t, []string{"email"}, p.Fields())
}

func TestUserNeverSerializesCredential(t *testing.T) {
	b, err := json.Marshal(User{ID: "u1", Email: "a@b.co", Credential: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
	assert.NotContains(t, string(b), "credential")
}

func TestRole(t *testing.T) {
	assert.True(t, RoleAdmin.Staff())
	assert.True(t, RoleAdmissions.Staff())
	assert.False(t, RoleAspirant.Staff())
	assert.False(t, Role("aspirante").Valid())
}
