package viewmodel

import (
	"context"
	"errors"
	"strings"

	"github.com/baharkarakas/program-catalog/internal/models"
)

var (
	ErrNotOpen    = errors.New("dialog is not open")
	ErrNoSuchItem = errors.New("item is not in the list")
)

type ProgramsAPI interface {
	ListPrograms(ctx context.Context) ([]models.Program, error)
	CreateProgram(ctx context.Context, d models.ProgramDraft) (models.Program, error)
	UpdateProgram(ctx context.Context, id string, patch models.ProgramPatch) (models.Program, error)
	DeleteProgram(ctx context.Context, id string) error
}

// ProgramForm is the editable buffer behind the create and edit dialogs.
type ProgramForm struct {
	Title       string
	Description string
	Modality    models.Modality
	Duration    string
	Image       string
	Faculty     string
	VideoURL    string
}

func formOf(p models.Program) ProgramForm {
	f := ProgramForm{
		Title:       p.Title,
		Description: p.Description,
		Modality:    p.Modality,
		Duration:    p.Duration,
		Image:       p.Image,
		Faculty:     p.Faculty,
	}
	if p.VideoURL != nil {
		f.VideoURL = *p.VideoURL
	}
	return f
}

// applyTo copies the form over p. An empty video URL clears the video.
func (f ProgramForm) applyTo(p *models.Program) {
	p.Title = strings.TrimSpace(f.Title)
	p.Description = strings.TrimSpace(f.Description)
	p.Modality = f.Modality
	p.Duration = strings.TrimSpace(f.Duration)
	p.Image = strings.TrimSpace(f.Image)
	p.Faculty = strings.TrimSpace(f.Faculty)
	p.VideoURL = nil
	if v := strings.TrimSpace(f.VideoURL); v != "" {
		p.VideoURL = &v
	}
}

// diff returns a patch with the fields that changed between from and to.
func diff(from, to ProgramForm) models.ProgramPatch {
	var p models.ProgramPatch
	set := func(dst **string, a, b string) {
		if strings.TrimSpace(a) != strings.TrimSpace(b) {
			v := strings.TrimSpace(b)
			*dst = &v
		}
	}
	set(&p.Title, from.Title, to.Title)
	set(&p.Description, from.Description, to.Description)
	set(&p.Duration, from.Duration, to.Duration)
	set(&p.Image, from.Image, to.Image)
	set(&p.Faculty, from.Faculty, to.Faculty)
	set(&p.VideoURL, from.VideoURL, to.VideoURL)
	if from.Modality != to.Modality {
		m := to.Modality
		p.Modality = &m
	}
	return p
}

// Programs is the admin program list: the fetched collection plus the
// video, edit and delete dialogs and the creation buffer.
type Programs struct {
	api ProgramsAPI

	phase  Phase
	items  []models.Program
	notice string

	video    Dialog
	videoBuf string

	edit     Dialog
	editBuf  ProgramForm
	editOrig ProgramForm

	del Dialog

	create ProgramForm
}

func NewPrograms(api ProgramsAPI) *Programs {
	return &Programs{api: api}
}

func (vm *Programs) Phase() Phase   { return vm.phase }
func (vm *Programs) Notice() string { return vm.notice }
func (vm *Programs) ClearNotice()   { vm.notice = "" }

func (vm *Programs) Items() []models.Program {
	out := make([]models.Program, len(vm.items))
	copy(out, vm.items)
	return out
}

// Load fetches the list. On failure the current list is kept and the error
// becomes the notice.
func (vm *Programs) Load(ctx context.Context) error {
	vm.phase = PhaseLoading
	defer func() { vm.phase = PhaseReady }()

	list, err := vm.api.ListPrograms(ctx)
	if err != nil {
		vm.notice = err.Error()
		return err
	}
	vm.items = list
	return nil
}

func (vm *Programs) find(id string) (int, bool) {
	for i, p := range vm.items {
		if p.ID == id {
			return i, true
		}
	}
	return -1, false
}

// --- video dialog ---

func (vm *Programs) VideoDialog() Dialog { return vm.video }
func (vm *Programs) VideoBuffer() string { return vm.videoBuf }
func (vm *Programs) SetVideo(url string) { vm.videoBuf = url }

func (vm *Programs) OpenVideo(id string) error {
	i, ok := vm.find(id)
	if !ok {
		return ErrNoSuchItem
	}
	vm.video = Dialog{State: Editing, TargetID: id}
	vm.videoBuf = formOf(vm.items[i]).VideoURL
	return nil
}

func (vm *Programs) CancelVideo() {
	vm.video = Dialog{}
	vm.videoBuf = ""
}

// SaveVideo sends only the video URL. An empty buffer clears the video.
func (vm *Programs) SaveVideo(ctx context.Context) error {
	if !vm.video.canSubmit() {
		return ErrNotOpen
	}
	id := vm.video.TargetID
	url := strings.TrimSpace(vm.videoBuf)
	patch := models.ProgramPatch{VideoURL: &url}

	vm.video.State = Saving
	if _, err := vm.api.UpdateProgram(ctx, id, patch); err != nil {
		vm.video.State = SaveFailed
		vm.notice = err.Error()
		return err
	}
	vm.update(id, func(p *models.Program) {
		p.VideoURL = nil
		if url != "" {
			p.VideoURL = &url
		}
	})
	vm.CancelVideo()
	return nil
}

// --- edit dialog ---

func (vm *Programs) EditDialog() Dialog          { return vm.edit }
func (vm *Programs) EditBuffer() ProgramForm     { return vm.editBuf }
func (vm *Programs) SetEditBuffer(f ProgramForm) { vm.editBuf = f }

// OpenEdit snapshots the item into the edit buffer.
func (vm *Programs) OpenEdit(id string) error {
	i, ok := vm.find(id)
	if !ok {
		return ErrNoSuchItem
	}
	vm.edit = Dialog{State: Editing, TargetID: id}
	vm.editOrig = formOf(vm.items[i])
	vm.editBuf = vm.editOrig
	return nil
}

// CancelEdit drops the buffer; the list is untouched.
func (vm *Programs) CancelEdit() {
	vm.edit = Dialog{}
	vm.editBuf = ProgramForm{}
	vm.editOrig = ProgramForm{}
}

// SaveEdit sends the changed fields. On success the list item is replaced
// by the locally edited copy, even where the server ignored a blank field.
func (vm *Programs) SaveEdit(ctx context.Context) error {
	if !vm.edit.canSubmit() {
		return ErrNotOpen
	}
	if strings.TrimSpace(vm.editBuf.Title) == "" || strings.TrimSpace(vm.editBuf.Description) == "" {
		vm.edit.State = SaveFailed
		vm.notice = "title and description are required"
		return errors.New(vm.notice)
	}
	patch := diff(vm.editOrig, vm.editBuf)
	if len(patch.Fields()) == 0 {
		vm.CancelEdit()
		return nil
	}

	id := vm.edit.TargetID
	vm.edit.State = Saving
	if _, err := vm.api.UpdateProgram(ctx, id, patch); err != nil {
		vm.edit.State = SaveFailed
		vm.notice = err.Error()
		return err
	}
	edited := vm.editBuf
	vm.update(id, func(p *models.Program) { edited.applyTo(p) })
	vm.CancelEdit()
	return nil
}

func (vm *Programs) update(id string, fn func(p *models.Program)) {
	if i, ok := vm.find(id); ok {
		fn(&vm.items[i])
	}
}

// --- delete dialog ---

func (vm *Programs) DeleteDialog() Dialog { return vm.del }

// AskDelete opens the confirmation step; nothing is sent yet.
func (vm *Programs) AskDelete(id string) error {
	if _, ok := vm.find(id); !ok {
		return ErrNoSuchItem
	}
	vm.del = Dialog{State: Editing, TargetID: id}
	return nil
}

func (vm *Programs) CancelDelete() { vm.del = Dialog{} }

// ConfirmDelete sends the delete and drops the item once the server agrees.
func (vm *Programs) ConfirmDelete(ctx context.Context) error {
	if !vm.del.canSubmit() {
		return ErrNotOpen
	}
	id := vm.del.TargetID
	vm.del.State = Saving
	if err := vm.api.DeleteProgram(ctx, id); err != nil {
		vm.del.State = SaveFailed
		vm.notice = err.Error()
		return err
	}
	if i, ok := vm.find(id); ok {
		vm.items = append(vm.items[:i], vm.items[i+1:]...)
	}
	vm.del = Dialog{}
	return nil
}

// --- creation ---

func (vm *Programs) CreateBuffer() ProgramForm     { return vm.create }
func (vm *Programs) SetCreateBuffer(f ProgramForm) { vm.create = f }

// Create appends the server's record and resets the buffer.
func (vm *Programs) Create(ctx context.Context) (models.Program, error) {
	f := vm.create
	p, err := vm.api.CreateProgram(ctx, models.ProgramDraft{
		Title:       f.Title,
		Description: f.Description,
		Modality:    f.Modality,
		Duration:    f.Duration,
		Image:       f.Image,
		Faculty:     f.Faculty,
		VideoURL:    f.VideoURL,
	})
	if err != nil {
		vm.notice = err.Error()
		return models.Program{}, err
	}
	vm.items = append(vm.items, p)
	vm.create = ProgramForm{}
	return p, nil
}
