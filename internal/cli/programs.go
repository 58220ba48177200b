package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/program-catalog/internal/models"
	"github.com/baharkarakas/program-catalog/internal/viewmodel"
)

var errCancelled = errors.New("cancelled")

func NewProgramsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "programs",
		Aliases: []string{"program"},
		Short:   "Manage academic programs",
	}
	cmd.AddCommand(newProgramsListCommand(rootOpts))
	cmd.AddCommand(newProgramsShowCommand(rootOpts))
	cmd.AddCommand(newProgramsCreateCommand(rootOpts))
	cmd.AddCommand(newProgramsEditCommand(rootOpts))
	cmd.AddCommand(newProgramsSetVideoCommand(rootOpts))
	cmd.AddCommand(newProgramsDeleteCommand(rootOpts))
	return cmd
}

// loadPrograms renders the admin list and runs fn against the loaded view model.
func loadPrograms(cmd *cobra.Command, rootOpts *RootOptions, fn func(ctx context.Context, a *app, vm *viewmodel.Programs) error) error {
	a := newApp(cmd, rootOpts)
	return a.render(cmd.Context(), routePrograms, func(ctx context.Context) error {
		vm := viewmodel.NewPrograms(a.authed(ctx))
		if err := vm.Load(ctx); err != nil {
			return err
		}
		return fn(ctx, a, vm)
	})
}

func newProgramsListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return loadPrograms(cmd, rootOpts, func(_ context.Context, a *app, vm *viewmodel.Programs) error {
				items := vm.Items()
				if a.printer().json() {
					return a.printer().JSON(items)
				}
				rows := make([][]string, 0, len(items))
				for _, p := range items {
					video := "-"
					if p.VideoURL != nil {
						video = *p.VideoURL
					}
					rows = append(rows, []string{p.ID, p.Title, string(p.Modality), orDash(p.Faculty), video})
				}
				return a.printer().Table([]string{"ID", "TITLE", "MODALITY", "FACULTY", "VIDEO"}, rows)
			})
		},
	}
}

func newProgramsShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd, rootOpts)
			return a.render(cmd.Context(), routeProgram, func(ctx context.Context) error {
				api := a.authed(ctx)
				p, err := api.GetProgram(ctx, args[0])
				if err != nil {
					return err
				}
				embed := ""
				if p.VideoURL != nil {
					if embed, err = api.EmbedURL(ctx, p.ID); err != nil {
						a.log.Debug("no embeddable video", "id", p.ID, "err", err)
					}
				}
				if a.printer().json() {
					return a.printer().JSON(struct {
						models.Program
						EmbedURL string `json:"embedUrl,omitempty"`
					}{p, embed})
				}
				pr := a.printer()
				pr.Linef("%s", p.Title)
				pr.Linef("  id:          %s", p.ID)
				pr.Linef("  modality:    %s", p.Modality)
				pr.Linef("  duration:    %s", orDash(p.Duration))
				pr.Linef("  faculty:     %s", orDash(p.Faculty))
				pr.Linef("  image:       %s", orDash(p.Image))
				pr.Linef("  embed:       %s", orDash(embed))
				pr.Linef("\n%s", p.Description)
				return nil
			})
		},
	}
}

// programFlags binds the editable program fields to a command.
func programFlags(cmd *cobra.Command, f *viewmodel.ProgramForm, modality *string) {
	cmd.Flags().StringVar(&f.Title, "title", "", "program title")
	cmd.Flags().StringVar(&f.Description, "description", "", "program description")
	cmd.Flags().StringVar(modality, "modality", "", "modality (Presencial|Virtual|Híbrida)")
	cmd.Flags().StringVar(&f.Duration, "duration", "", "duration, e.g. \"4 years\"")
	cmd.Flags().StringVar(&f.Image, "image", "", "image URL")
	cmd.Flags().StringVar(&f.Faculty, "faculty", "", "faculty name")
	cmd.Flags().StringVar(&f.VideoURL, "video", "", "video URL")
}

func newProgramsCreateCommand(rootOpts *RootOptions) *cobra.Command {
	var form viewmodel.ProgramForm
	var modality string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a program",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return loadPrograms(cmd, rootOpts, func(ctx context.Context, a *app, vm *viewmodel.Programs) error {
				if modality != "" {
					form.Modality = models.Modality(modality)
				}
				vm.SetCreateBuffer(form)
				p, err := vm.Create(ctx)
				if err != nil {
					return err
				}
				if a.printer().json() {
					return a.printer().JSON(p)
				}
				a.printer().Linef("created %s (%s)", p.Title, p.ID)
				return nil
			})
		},
	}
	programFlags(cmd, &form, &modality)
	return cmd
}

func newProgramsEditCommand(rootOpts *RootOptions) *cobra.Command {
	var form viewmodel.ProgramForm
	var modality string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change program fields; only the given flags are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return loadPrograms(cmd, rootOpts, func(ctx context.Context, a *app, vm *viewmodel.Programs) error {
				if err := vm.OpenEdit(args[0]); err != nil {
					return fmt.Errorf("program %s: %w", args[0], err)
				}
				buf := vm.EditBuffer()
				flags := cmd.Flags()
				set := func(name string, dst *string, v string) {
					if flags.Changed(name) {
						*dst = v
					}
				}
				set("title", &buf.Title, form.Title)
				set("description", &buf.Description, form.Description)
				set("duration", &buf.Duration, form.Duration)
				set("image", &buf.Image, form.Image)
				set("faculty", &buf.Faculty, form.Faculty)
				set("video", &buf.VideoURL, form.VideoURL)
				if flags.Changed("modality") {
					buf.Modality = models.Modality(modality)
				}
				vm.SetEditBuffer(buf)
				if err := vm.SaveEdit(ctx); err != nil {
					return err
				}
				return printProgram(a, vm, args[0], "updated")
			})
		},
	}
	programFlags(cmd, &form, &modality)
	return cmd
}

func newProgramsSetVideoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-video <id> [url]",
		Short: "Set or clear the program video",
		Long:  "Set the program video URL. Without a URL the video is removed.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return loadPrograms(cmd, rootOpts, func(ctx context.Context, a *app, vm *viewmodel.Programs) error {
				if err := vm.OpenVideo(args[0]); err != nil {
					return fmt.Errorf("program %s: %w", args[0], err)
				}
				url := ""
				if len(args) == 2 {
					url = args[1]
				}
				vm.SetVideo(url)
				if err := vm.SaveVideo(ctx); err != nil {
					return err
				}
				return printProgram(a, vm, args[0], "video saved")
			})
		},
	}
}

func newProgramsDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return loadPrograms(cmd, rootOpts, func(ctx context.Context, a *app, vm *viewmodel.Programs) error {
				if err := vm.AskDelete(args[0]); err != nil {
					return fmt.Errorf("program %s: %w", args[0], err)
				}
				ok, err := a.confirm(yes, fmt.Sprintf("Delete program %s?", args[0]))
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

func printProgram(a *app, vm *viewmodel.Programs, id, verb string) error {
	for _, p := range vm.Items() {
		if p.ID != id {
			continue
		}
		if a.printer().json() {
			return a.printer().JSON(p)
		}
		a.printer().Linef("%s %s (%s)", verb, p.Title, p.ID)
		return nil
	}
	return nil
}
