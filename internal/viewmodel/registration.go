package viewmodel

import (
	"context"
	"strings"

	"github.com/baharkarakas/program-catalog/internal/models"
	"github.com/baharkarakas/program-catalog/internal/validate"
)

type RegisterAPI interface {
	Register(ctx context.Context, reg models.Registration) (models.User, error)
}

// Registration is the public sign-up form.
type Registration struct {
	api     RegisterAPI
	form    models.Registration
	errs    map[string]string
	notice  string
	success bool
}

func NewRegistration(api RegisterAPI) *Registration {
	return &Registration{api: api, form: defaultRegistration()}
}

func defaultRegistration() models.Registration {
	return models.Registration{Role: models.RoleAspirant}
}

func (vm *Registration) Form() models.Registration     { return vm.form }
func (vm *Registration) SetForm(f models.Registration) { vm.form = f }

// FieldErrors maps field names to messages from the last submit.
func (vm *Registration) FieldErrors() map[string]string { return vm.errs }
func (vm *Registration) Notice() string                 { return vm.notice }
func (vm *Registration) Succeeded() bool                { return vm.success }

// Submit checks the form locally before sending it. On success the form
// goes back to its defaults.
func (vm *Registration) Submit(ctx context.Context) (models.User, error) {
	vm.errs, vm.notice, vm.success = nil, "", false
	if vm.form.Role == "" {
		vm.form.Role = models.RoleAspirant
	}
	if errs := validate.Struct(vm.form); errs != nil {
		vm.errs = map[string]string{}
		for _, e := range errs {
			vm.errs[e.Field] = e.Msg
		}
		vm.notice = "please fix the highlighted fields"
		return models.User{}, errs
	}
	if !vm.form.Role.Staff() {
		vm.form.Credential = ""
	}
	vm.form.Email = strings.TrimSpace(vm.form.Email)

	u, err := vm.api.Register(ctx, vm.form)
	if err != nil {
		vm.notice = err.Error()
		return models.User{}, err
	}
	vm.success = true
	vm.notice = "registration complete"
	vm.form = defaultRegistration()
	return u, nil
}
