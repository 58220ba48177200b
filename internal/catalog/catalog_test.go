package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/program-catalog/internal/models"
)

func TestGroupByFaculty(t *testing.T) {
	list := []models.Program{
		{ID: "1", Faculty: "Ingeniería"},
		{ID: "2"},
		{ID: "3", Faculty: "Derecho"},
		{ID: "4", Faculty: "Ingeniería"},
		{ID: "5", Faculty: "  "},
	}
	groups := GroupByFaculty(list)
	require.Len(t, groups, 3)

	assert.Equal(t, "Derecho", groups[0].Faculty)
	assert.Equal(t, DefaultFaculty, groups[1].Faculty)
	assert.Equal(t, "Ingeniería", groups[2].Faculty)

	var ids []string
	for _, p := range groups[2].Programs {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "4"}, ids)
	assert.Len(t, groups[1].Programs, 2)
}

func TestGroupByFacultyEmpty(t *testing.T) {
	groups := GroupByFaculty(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestFeatured(t *testing.T) {
	list := make([]models.Program, 8)
	assert.Len(t, Featured(list, FeaturedCount), 6)
	assert.Len(t, Featured(list[:2], FeaturedCount), 2)
	assert.Empty(t, Featured(list, -1))
}

func TestEmbedURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://youtube.com/v/a-b_c-d_e-f", "https://www.youtube.com/embed/a-b_c-d_e-f", true},
		{"https://youtu.be/abc123", "", false},
		{"https://vimeo.com/123456789", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := EmbedURL(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
