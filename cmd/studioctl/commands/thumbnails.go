package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var thumbnailsCmd = &cobra.Command{
	Use:   "thumbnails",
	Short: "Manage the Google Drive thumbnail cache",
}

var thumbnailsWarmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Create missing thumbnails for every Drive album",
	Long: `Walk every Drive album and create a thumbnail for each image that does
not have one yet. Failures are counted and skipped.`,
	Args: cobra.NoArgs,
	RunE: runThumbnailsWarm,
}

func init() {
	thumbnailsCmd.AddCommand(thumbnailsWarmCmd)
	rootCmd.AddCommand(thumbnailsCmd)
}

func runThumbnailsWarm(cmd *cobra.Command, args []string) error {
	report := application.ThumbnailWarmer.Warm()

	fmt.Fprintf(out, "Albums:  %d\n", report.Albums)
	fmt.Fprintf(out, "Images:  %d\n", report.Images)
	fmt.Fprintf(out, "Cached:  %d\n", report.Cached)
	fmt.Fprintf(out, "Created: %d\n", report.Created)
	fmt.Fprintf(out, "Failed:  %d\n", report.Failed)

	if report.Failed > 0 {
		return fmt.Errorf("%d thumbnails could not be created", report.Failed)
	}

	return nil
}
