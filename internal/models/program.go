package models

import (
	"strings"
	"time"
)

type Modality string

const (
	ModalityOnSite  Modality = "Presencial"
	ModalityVirtual Modality = "Virtual"
	ModalityHybrid  Modality = "Híbrida"
)

// Valid accepts the three catalog modalities and the empty value.
func (m Modality) Valid() bool {
	switch m {
	case "", ModalityOnSite, ModalityVirtual, ModalityHybrid:
		return true
	}
	return false
}

type Program struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Modality    Modality   `json:"modality"`
	Duration    string     `json:"duration"`
	Image       string     `json:"image"`
	Faculty     string     `json:"faculty"`
	VideoURL    *string    `json:"videoUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// ProgramDraft is the create payload. Title and description are mandatory.
type ProgramDraft struct {
	Title       string   `json:"title" validate:"notblank"`
	Description string   `json:"description" validate:"notblank"`
	Modality    Modality `json:"modality,omitempty" validate:"omitempty,oneof=Presencial Virtual Híbrida"`
	Duration    string   `json:"duration,omitempty"`
	Image       string   `json:"image,omitempty"`
	Faculty     string   `json:"faculty,omitempty"`
	VideoURL    string   `json:"videoUrl,omitempty"`
}

// Program builds the record a draft creates, before an id is assigned.
func (d ProgramDraft) Program() Program {
	p := Program{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Modality:    d.Modality,
		Duration:    strings.TrimSpace(d.Duration),
		Image:       strings.TrimSpace(d.Image),
		Faculty:     strings.TrimSpace(d.Faculty),
	}
	if v := strings.TrimSpace(d.VideoURL); v != "" {
		p.VideoURL = &v
	}
	return p
}

// ProgramPatch is a partial update. A nil field was not sent. Text fields
// set to "" are no-ops, except VideoURL where "" clears the video.
type ProgramPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Modality    *Modality `json:"modality,omitempty"`
	Duration    *string   `json:"duration,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Faculty     *string   `json:"faculty,omitempty"`
	VideoURL    *string   `json:"videoUrl,omitempty"`
}

// Normalize drops no-op fields so that only effective changes remain.
func (p ProgramPatch) Normalize() ProgramPatch {
	out := ProgramPatch{
		Title:       nonBlank(p.Title),
		Description: nonBlank(p.Description),
		Duration:    nonBlank(p.Duration),
		Image:       nonBlank(p.Image),
		Faculty:     nonBlank(p.Faculty),
	}
	if p.Modality != nil && *p.Modality != "" {
		m := *p.Modality
		out.Modality = &m
	}
	if p.VideoURL != nil {
		v := strings.TrimSpace(*p.VideoURL)
		out.VideoURL = &v
	}
	return out
}

// Fields lists the names of the fields present in the patch.
func (p ProgramPatch) Fields() []string {
	var out []string
	add := func(name string, present bool) {
		if present {
			out = append(out, name)
		}
	}
	add("title", p.Title != nil)
	add("description", p.Description != nil)
	add("modality", p.Modality != nil)
	add("duration", p.Duration != nil)
	add("image", p.Image != nil)
	add("faculty", p.Faculty != nil)
	add("videoUrl", p.VideoURL != nil)
	return out
}

// Apply writes a normalized patch onto p.
func (p ProgramPatch) Apply(prog *Program) {
	if p.Title != nil {
		prog.Title = *p.Title
	}
	if p.Description != nil {
		prog.Description = *p.Description
	}
	if p.Modality != nil {
		prog.Modality = *p.Modality
	}
	if p.Duration != nil {
		prog.Duration = *p.Duration
	}
	if p.Image != nil {
		prog.Image = *p.Image
	}
	if p.Faculty != nil {
		prog.Faculty = *p.Faculty
	}
	if p.VideoURL != nil {
		if *p.VideoURL == "" {
			prog.VideoURL = nil
		} else {
			v := *p.VideoURL
			prog.VideoURL = &v
		}
	}
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T { return &v }
