// Package catalog builds the public, read-only views of the program list.
package catalog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/baharkarakas/program-catalog/internal/models"
)

// DefaultFaculty groups programs with no faculty.
const DefaultFaculty = "General"

// FeaturedCount is how many programs the home carousel shows.
const FeaturedCount = 6

// View is the public home page: the carousel and the faculty groups.
type View struct {
	Featured  []models.Program `json:"featured"`
	Faculties []Group          `json:"faculties"`
}

func Build(list []models.Program) View {
	return View{
		Featured:  Featured(list, FeaturedCount),
		Faculties: GroupByFaculty(list),
	}
}

type Group struct {
	Faculty  string           `json:"faculty"`
	Programs []models.Program `json:"programs"`
}

// GroupByFaculty keeps list order within each group and sorts groups by name.
func GroupByFaculty(list []models.Program) []Group {
	idx := map[string]int{}
	groups := []Group{}
	for _, p := range list {
		name := strings.TrimSpace(p.Faculty)
		if name == "" {
			name = DefaultFaculty
		}
		i, ok := idx[name]
		if !ok {
			i = len(groups)
			idx[name] = i
			groups = append(groups, Group{Faculty: name})
		}
		groups[i].Programs = append(groups[i].Programs, p)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Faculty < groups[j].Faculty })
	return groups
}

// Featured returns the first n programs.
func Featured(list []models.Program, n int) []models.Program {
	if n < 0 {
		n = 0
	}
	if len(list) < n {
		n = len(list)
	}
	out := make([]models.Program, n)
	copy(out, list[:n])
	return out
}

var youtubeID = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/(?:watch\?v=|embed/|v/))([\w-]{11})`)

// EmbedURL converts a YouTube link into its embeddable form. ok is false
// when the link is not recognised.
func EmbedURL(videoURL string) (string, bool) {
	m := youtubeID.FindStringSubmatch(videoURL)
	if m == nil {
		return "", false
	}
	return "https://www.youtube.com/embed/" + m[1], true
}
