package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/program-catalog/internal/gate"
	"github.com/baharkarakas/program-catalog/internal/models"
	"github.com/baharkarakas/program-catalog/internal/viewmodel"
)

var errLoginFailed = errors.New("login failed: check email and credential")

func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var email, credential string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd, rootOpts)
			return a.render(cmd.Context(), routeLogin, func(ctx context.Context) error {
				if credential == "" {
					var err error
					if credential, err = a.readSecret("Credential: "); err != nil {
						return err
					}
				}
				if !a.provider.Login(ctx, email, credential) {
					return errLoginFailed
				}
				id, _ := a.provider.Identity()
				if a.printer().json() {
					id.Token = ""
					return a.printer().JSON(id)
				}
				a.printer().Linef("logged in as %s <%s>", id.FullName, id.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVar(&credential, "credential", "", "credential (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd, rootOpts)
			a.provider.Logout(cmd.Context())
			a.printer().Linef("logged out")
			return nil
		},
	}
}

func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd, rootOpts)
			return a.render(cmd.Context(), routeAccount, func(ctx context.Context) error {
				p, _ := gate.FromContext(ctx)
				id, _ := p.Identity()
				if a.printer().json() {
					id.Token = ""
					return a.printer().JSON(id)
				}
				a.printer().Linef("%s <%s> (%s)", id.FullName, id.Email, id.ID)
				return nil
			})
		},
	}
}

func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	var reg models.Registration
	var role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd, rootOpts)
			return a.render(cmd.Context(), routeRegister, func(ctx context.Context) error {
				vm := viewmodel.NewRegistration(a.api)
				reg.Role = models.Role(strings.ToLower(role))
				vm.SetForm(reg)
				u, err := vm.Submit(ctx)
				if err != nil {
					for field, msg := range vm.FieldErrors() {
						a.log.Warn("invalid field", "field", field, "msg", msg)
					}
					return err
				}
				if a.printer().json() {
					return a.printer().JSON(u)
				}
				a.printer().Linef("%s: %s <%s> as %s", vm.Notice(), u.FullName, u.Email, u.Role)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&reg.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "email address")
	cmd.Flags().StringVar(&reg.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&role, "role", string(models.RoleAspirant), "role (aspirant|admissions|admin)")
	cmd.Flags().StringVar(&reg.Credential, "credential", "", "credential for admissions and admin roles")
	return cmd
}
