// Package cli implements catalogctl, the command-line client of the catalog API.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	APIURL      string
	SessionFile string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

const defaultAPIURL = "http://localhost:8080"

// NewRootCommand creates the root command for catalogctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "catalogctl - university program catalog client",
		Long: `Browse the public program catalog and manage programs and users.

Commands other than catalog, login and register need a session; run
"catalogctl login" first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return resolveSettings(cmd, opts)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api", "", "API base URL (env CATALOG_API_URL)")
	cmd.PersistentFlags().StringVar(&opts.SessionFile, "session-file", "", "session file (env CATALOG_SESSION_FILE)")

	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))
	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewProgramsCommand(opts))
	cmd.AddCommand(NewUsersCommand(opts))

	return cmd
}

// resolveSettings fills the API URL and session file from flags, then the
// environment, then defaults.
func resolveSettings(cmd *cobra.Command, opts *RootOptions) error {
	v := viper.New()
	v.SetDefault("api", defaultAPIURL)
	v.SetDefault("session-file", defaultSessionFile())
	_ = v.BindEnv("api", "CATALOG_API_URL")
	_ = v.BindEnv("session-file", "CATALOG_SESSION_FILE")
	if err := v.BindPFlag("api", cmd.Root().PersistentFlags().Lookup("api")); err != nil {
		return err
	}
	if err := v.BindPFlag("session-file", cmd.Root().PersistentFlags().Lookup("session-file")); err != nil {
		return err
	}
	opts.APIURL = v.GetString("api")
	opts.SessionFile = v.GetString("session-file")
	return nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "catalogctl", "session.json")
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
