package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/program-catalog/internal/catalog"
)

func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show the public program catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd, rootOpts)
			return a.render(cmd.Context(), routeHome, func(ctx context.Context) error {
				view, err := a.api.Catalog(ctx)
				if err != nil {
					return err
				}
				return printCatalog(a.printer(), view)
			})
		},
	}
}

func printCatalog(p *printer, view catalog.View) error {
	if p.json() {
		return p.JSON(view)
	}
	if len(view.Featured) == 0 {
		p.Linef("no programs published yet")
		return nil
	}
	p.Linef("Featured")
	rows := make([][]string, 0, len(view.Featured))
	for _, pr := range view.Featured {
		rows = append(rows, []string{pr.Title, string(pr.Modality), orDash(pr.Duration)})
	}
	if err := p.Table([]string{"TITLE", "MODALITY", "DURATION"}, rows); err != nil {
		return err
	}
	for _, g := range view.Faculties {
		p.Linef("\n%s (%d)", g.Faculty, len(g.Programs))
		for _, pr := range g.Programs {
			p.Linef("  %s  %s", pr.ID, pr.Title)
		}
	}
	return nil
}
