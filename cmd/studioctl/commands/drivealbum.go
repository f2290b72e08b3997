package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	driveAlbumTitle string
	driveAlbumLink  string
)

var driveAlbumCmd = &cobra.Command{
	Use:   "drive-album",
	Short: "Manage albums backed by a shared Google Drive folder",
}

var driveAlbumCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a Drive album from a folder link",
	Args:  cobra.NoArgs,
	RunE:  runDriveAlbumCreate,
}

var driveAlbumSetLinkCmd = &cobra.Command{
	Use:   "set-link <album-id> <folder-link>",
	Short: "Point a Drive album at a different folder",
	Args:  cobra.ExactArgs(2),
	RunE:  runDriveAlbumSetLink,
}

var driveAlbumListCmd = &cobra.Command{
	Use:   "list",
	Short: "List Drive albums, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDriveAlbumList,
}

var driveAlbumRegenerateQRCmd = &cobra.Command{
	Use:   "regenerate-qr <album-id>",
	Short: "Render the Drive album's QR code again",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveAlbumRegenerateQR,
}

var driveAlbumDeleteCmd = &cobra.Command{
	Use:   "delete <album-id>",
	Short: "Delete a Drive album. The Drive folder is left untouched",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveAlbumDelete,
}

func init() {
	driveAlbumCreateCmd.Flags().StringVarP(&driveAlbumTitle, "title", "t", "", "Album title")
	driveAlbumCreateCmd.Flags().StringVarP(&driveAlbumLink, "link", "l", "", "Google Drive folder link")
	_ = driveAlbumCreateCmd.MarkFlagRequired("title")
	_ = driveAlbumCreateCmd.MarkFlagRequired("link")

	driveAlbumCmd.AddCommand(driveAlbumCreateCmd, driveAlbumSetLinkCmd, driveAlbumListCmd, driveAlbumRegenerateQRCmd, driveAlbumDeleteCmd)
	rootCmd.AddCommand(driveAlbumCmd)
}

func runDriveAlbumCreate(cmd *cobra.Command, args []string) error {
	album, err := application.DriveAlbumService.CreateDriveAlbum(driveAlbumTitle, driveAlbumLink)
	if err != nil {
		return fmt.Errorf("failed to create drive album: %w", err)
	}

	fmt.Fprintf(out, "Created drive album %s\n", album.ID)
	fmt.Fprintf(out, "  Title:   %s\n", album.Title)
	fmt.Fprintf(out, "  Folder:  %s\n", album.FolderID)
	fmt.Fprintf(out, "  Link:    %s\n", application.QRCodeService.TargetURL(album))
	fmt.Fprintf(out, "  QR code: %s\n", album.QRCodePath)
	return nil
}

func runDriveAlbumSetLink(cmd *cobra.Command, args []string) error {
	album, err := application.DriveAlbumService.SetFolderLink(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to update folder link: %w", err)
	}

	fmt.Fprintf(out, "Drive album %s now uses folder %s\n", album.ID, album.FolderID)
	return nil
}

func runDriveAlbumList(cmd *cobra.Command, args []string) error {
	albums, err := application.DriveAlbumService.GetDriveAlbumList()
	if err != nil {
		return fmt.Errorf("failed to list drive albums: %w", err)
	}

	if len(albums) == 0 {
		fmt.Fprintln(out, "No drive albums found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tFOLDER\tCREATED")
	fmt.Fprintln(w, "--\t-----\t------\t-------")

	for _, album := range albums {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", album.ID, album.Title, album.FolderID, album.CreatedAt.Format("2006-01-02 15:04"))
	}

	return w.Flush()
}

func runDriveAlbumRegenerateQR(cmd *cobra.Command, args []string) error {
	album, err := application.DriveAlbumService.RegenerateQRCode(args[0])
	if err != nil {
		return fmt.Errorf("failed to regenerate QR code: %w", err)
	}

	fmt.Fprintf(out, "QR code for %s written to %s\n", album.ID, album.QRCodePath)
	return nil
}

func runDriveAlbumDelete(cmd *cobra.Command, args []string) error {
	if err := application.DriveAlbumService.DeleteDriveAlbum(args[0]); err != nil {
		return fmt.Errorf("failed to delete drive album: %w", err)
	}

	fmt.Fprintf(out, "Deleted drive album %s\n", args[0])
	return nil
}
