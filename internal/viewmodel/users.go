package viewmodel

import (
	"context"
	"strings"

	"github.com/baharkarakas/program-catalog/internal/models"
)

type UsersAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type UserForm struct {
	FullName string
	Email    string
	Phone    string
	Role     models.Role
	// Credential is only sent when filled in.
	Credential string
}

// UserStats are the counters shown above the user table.
type UserStats struct {
	Total  int
	Admins int
	Roles  int
}

// Users is the admin user list. Unlike the program list it re-fetches
// after every successful save or delete.
type Users struct {
	api UsersAPI

	phase  Phase
	items  []models.User
	notice string

	edit     Dialog
	editBuf  UserForm
	editOrig UserForm

	del Dialog
}

func NewUsers(api UsersAPI) *Users { return &Users{api: api} }

func (vm *Users) Phase() Phase   { return vm.phase }
func (vm *Users) Notice() string { return vm.notice }

func (vm *Users) Items() []models.User {
	out := make([]models.User, len(vm.items))
	copy(out, vm.items)
	return out
}

func (vm *Users) Load(ctx context.Context) error {
	vm.phase = PhaseLoading
	defer func() { vm.phase = PhaseReady }()

	list, err := vm.api.ListUsers(ctx)
	if err != nil {
		vm.notice = err.Error()
		return err
	}
	vm.items = list
	return nil
}

func (vm *Users) Stats() UserStats {
	roles := map[models.Role]struct{}{}
	s := UserStats{Total: len(vm.items)}
	for _, u := range vm.items {
		if strings.EqualFold(string(u.Role), string(models.RoleAdmin)) {
			s.Admins++
		}
		if u.Role != "" {
			roles[u.Role] = struct{}{}
		}
	}
	s.Roles = len(roles)
	return s
}

func (vm *Users) find(id string) (models.User, bool) {
	for _, u := range vm.items {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (vm *Users) EditDialog() Dialog       { return vm.edit }
func (vm *Users) EditBuffer() UserForm     { return vm.editBuf }
func (vm *Users) SetEditBuffer(f UserForm) { vm.editBuf = f }

func (vm *Users) OpenEdit(id string) error {
	u, ok := vm.find(id)
	if !ok {
		return ErrNoSuchItem
	}
	vm.edit = Dialog{State: Editing, TargetID: id}
	vm.editOrig = UserForm{FullName: u.FullName, Email: u.Email, Phone: u.Phone, Role: u.Role}
	vm.editBuf = vm.editOrig
	return nil
}

func (vm *Users) CancelEdit() {
	vm.edit = Dialog{}
	vm.editBuf = UserForm{}
	vm.editOrig = UserForm{}
}

func (vm *Users) SaveEdit(ctx context.Context) error {
	if !vm.edit.canSubmit() {
		return ErrNotOpen
	}
	patch := userDiff(vm.editOrig, vm.editBuf)
	if len(patch.Fields()) == 0 {
		vm.CancelEdit()
		return nil
	}
	vm.edit.State = Saving
	if _, err := vm.api.UpdateUser(ctx, vm.edit.TargetID, patch); err != nil {
		vm.edit.State = SaveFailed
		vm.notice = err.Error()
		return err
	}
	vm.CancelEdit()
	vm.refresh(ctx)
	return nil
}

// refresh re-fetches after a confirmed write. A failed fetch keeps the
// current list and only sets the notice.
func (vm *Users) refresh(ctx context.Context) {
	_ = vm.Load(ctx)
}

func userDiff(from, to UserForm) models.UserPatch {
	var p models.UserPatch
	set := func(dst **string, a, b string) {
		if b = strings.TrimSpace(b); b != "" && b != strings.TrimSpace(a) {
			*dst = &b
		}
	}
	set(&p.FullName, from.FullName, to.FullName)
	set(&p.Email, from.Email, to.Email)
	set(&p.Phone, from.Phone, to.Phone)
	set(&p.Credential, "", to.Credential)
	if to.Role != "" && to.Role != from.Role {
		r := to.Role
		p.Role = &r
	}
	return p
}

func (vm *Users) DeleteDialog() Dialog { return vm.del }

func (vm *Users) AskDelete(id string) error {
	if _, ok := vm.find(id); !ok {
		return ErrNoSuchItem
	}
	vm.del = Dialog{State: Editing, TargetID: id}
	return nil
}

func (vm *Users) CancelDelete() { vm.del = Dialog{} }

func (vm *Users) ConfirmDelete(ctx context.Context) error {
	if !vm.del.canSubmit() {
		return ErrNotOpen
	}
	vm.del.State = Saving
	if err := vm.api.DeleteUser(ctx, vm.del.TargetID); err != nil {
		vm.del.State = SaveFailed
		vm.notice = err.Error()
		return err
	}
	vm.del = Dialog{}
	vm.refresh(ctx)
	return nil
}
