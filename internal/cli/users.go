package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/program-catalog/internal/models"
	"github.com/baharkarakas/program-catalog/internal/viewmodel"
)

func NewUsersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage registered users",
	}
	cmd.AddCommand(newUsersListCommand(rootOpts))
	cmd.AddCommand(newUsersEditCommand(rootOpts))
	cmd.AddCommand(newUsersDeleteCommand(rootOpts))
	return cmd
}

func loadUsers(cmd *cobra.Command, rootOpts *RootOptions, fn func(ctx context.Context, a *app, vm *viewmodel.Users) error) error {
	a := newApp(cmd, rootOpts)
	return a.render(cmd.Context(), routeUsers, func(ctx context.Context) error {
		vm := viewmodel.NewUsers(a.authed(ctx))
		if err := vm.Load(ctx); err != nil {
			return err
		}
		return fn(ctx, a, vm)
	})
}

func newUsersListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users with summary counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return loadUsers(cmd, rootOpts, func(_ context.Context, a *app, vm *viewmodel.Users) error {
				items, stats := vm.Items(), vm.Stats()
				if a.printer().json() {
					return a.printer().JSON(struct {
						Users []models.User       `json:"users"`
						Stats viewmodel.UserStats `json:"stats"`
					}{items, stats})
				}
				rows := make([][]string, 0, len(items))
				for _, u := range items {
					rows = append(rows, []string{u.ID, u.FullName, u.Email, orDash(u.Phone), string(u.Role)})
				}
				if err := a.printer().Table([]string{"ID", "NAME", "EMAIL", "PHONE", "ROLE"}, rows); err != nil {
					return err
				}
				a.printer().Linef("\n%d users, %d admins, %d roles", stats.Total, stats.Admins, stats.Roles)
				return nil
			})
		},
	}
}

func newUsersEditCommand(rootOpts *RootOptions) *cobra.Command {
	var form viewmodel.UserForm
	var role string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change user fields; only the given flags are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return loadUsers(cmd, rootOpts, func(ctx context.Context, a *app, vm *viewmodel.Users) error {
				if err := vm.OpenEdit(args[0]); err != nil {
					return fmt.Errorf("user %s: %w", args[0], err)
				}
				buf := vm.EditBuffer()
				flags := cmd.Flags()
				if flags.Changed("name") {
					buf.FullName = form.FullName
				}
				if flags.Changed("email") {
					buf.Email = form.Email
				}
				if flags.Changed("phone") {
					buf.Phone = form.Phone
				}
				if flags.Changed("role") {
					buf.Role = models.Role(role)
				}
				buf.Credential = form.Credential
				vm.SetEditBuffer(buf)
				if err := vm.SaveEdit(ctx); err != nil {
					return err
				}
				for _, u := range vm.Items() {
					if u.ID == args[0] {
						if a.printer().json() {
							return a.printer().JSON(u)
						}
						a.printer().Linef("updated %s <%s> (%s)", u.FullName, u.Email, u.Role)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&form.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&role, "role", "", "role (aspirant|admissions|admin)")
	cmd.Flags().StringVar(&form.Credential, "credential", "", "new credential")
	return cmd
}

func newUsersDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return loadUsers(cmd, rootOpts, func(ctx context.Context, a *app, vm *viewmodel.Users) error {
				if err := vm.AskDelete(args[0]); err != nil {
					return fmt.Errorf("user %s: %w", args[0], err)
				}
				ok, err := a.confirm(yes, fmt.Sprintf("Delete user %s?", args[0]))
				if err != nil {
					return err
				}
				if !ok {
					vm.CancelDelete()
					return errCancelled
				}
				if err := vm.ConfirmDelete(ctx); err != nil {
					return err
				}
				a.printer().Linef("deleted %s", args[0])
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
