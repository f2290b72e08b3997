package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/avestudio/studio/internal/app"
	"github.com/avestudio/studio/internal/configuration"
	"github.com/spf13/cobra"
)

var (
	config      *configuration.Config
	application *app.App
	out         io.Writer = os.Stdout
)

var rootCmd = &cobra.Command{
	Use:   "studioctl",
	Short: "Administer albums, portfolio images and the thumbnail cache",
	Long: `studioctl manages the studio's data directly: client albums with their
PINs and QR codes, Google Drive albums, portfolio categories and images,
and the Drive thumbnail cache. It uses the same environment variables as
the web server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var (
			err error
		)

		if application != nil {
			return nil
		}

		if application, err = app.New(context.Background(), config); err != nil {
			return fmt.Errorf("error starting up: %w", err)
		}

		return nil
	},
}

/*
Execute runs the command line and returns the process exit code.
*/
func Execute(c *configuration.Config, version string, args []string) int {
	config = c
	rootCmd.Version = version
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
