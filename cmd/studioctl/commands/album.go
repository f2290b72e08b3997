package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/avestudio/studio/pkg/models"
	"github.com/spf13/cobra"
)

var (
	albumTitle      string
	shareToName     string
	shareToEmail    string
	shareIncludePin bool
)

var albumCmd = &cobra.Command{
	Use:   "album",
	Short: "Manage PIN protected client albums",
}

var albumCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an album with a new PIN and QR code",
	Args:  cobra.NoArgs,
	RunE:  runAlbumCreate,
}

var albumListCmd = &cobra.Command{
	Use:   "list",
	Short: "List albums, newest first",
	Args:  cobra.NoArgs,
	RunE:  runAlbumList,
}

var albumAddImagesCmd = &cobra.Command{
	Use:   "add-images <album-id> <file>...",
	Short: "Upload image files into an album",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAlbumAddImages,
}

var albumRegenerateQRCmd = &cobra.Command{
	Use:   "regenerate-qr <album-id>",
	Short: "Render the album's QR code again",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlbumRegenerateQR,
}

var albumShareCmd = &cobra.Command{
	Use:   "share <album-id>",
	Short: "Email the album link, QR code and PIN to a client",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlbumShare,
}

var albumDeleteCmd = &cobra.Command{
	Use:   "delete <album-id>",
	Short: "Delete an album with its images and QR code",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlbumDelete,
}

func init() {
	albumCreateCmd.Flags().StringVarP(&albumTitle, "title", "t", "", "Album title")
	_ = albumCreateCmd.MarkFlagRequired("title")

	albumShareCmd.Flags().StringVar(&shareToName, "name", "", "Client name")
	albumShareCmd.Flags().StringVar(&shareToEmail, "email", "", "Client email address")
	albumShareCmd.Flags().BoolVar(&shareIncludePin, "include-pin", true, "Include the PIN in the email")
	_ = albumShareCmd.MarkFlagRequired("email")

	albumCmd.AddCommand(albumCreateCmd, albumListCmd, albumAddImagesCmd, albumRegenerateQRCmd, albumShareCmd, albumDeleteCmd)
	rootCmd.AddCommand(albumCmd)
}

func runAlbumCreate(cmd *cobra.Command, args []string) error {
	album, err := application.AlbumService.CreateAlbum(albumTitle)
	if err != nil {
		return fmt.Errorf("failed to create album: %w", err)
	}

	fmt.Fprintf(out, "Created album %s\n", album.ID)
	fmt.Fprintf(out, "  Title:   %s\n", album.Title)
	fmt.Fprintf(out, "  PIN:     %s\n", album.Pin)
	fmt.Fprintf(out, "  Link:    %s\n", application.QRCodeService.TargetURL(album))
	fmt.Fprintf(out, "  QR code: %s\n", album.QRCodePath)
	return nil
}

func runAlbumList(cmd *cobra.Command, args []string) error {
	albums, err := application.AlbumService.GetAlbumList()
	if err != nil {
		return fmt.Errorf("failed to list albums: %w", err)
	}

	if len(albums) == 0 {
		fmt.Fprintln(out, "No albums found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPIN\tCREATED")
	fmt.Fprintln(w, "--\t-----\t---\t-------")

	for _, album := range albums {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", album.ID, album.Title, album.Pin, album.CreatedAt.Format("2006-01-02 15:04"))
	}

	return w.Flush()
}

func runAlbumAddImages(cmd *cobra.Command, args []string) error {
	var (
		err   error
		b     []byte
		image *models.AlbumImage
	)

	albumID := args[0]
	failed := 0

	for _, file := range args[1:] {
		if b, err = os.ReadFile(file); err != nil {
			fmt.Fprintf(out, "  ✗ %s: %v\n", file, err)
			failed++
			continue
		}

		if image, err = application.AlbumService.AddImage(albumID, filepath.Base(file), b); err != nil {
			fmt.Fprintf(out, "  ✗ %s: %v\n", file, err)
			failed++
			continue
		}

		fmt.Fprintf(out, "  ✓ %s -> %s\n", file, image.ImagePath)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d images failed to upload", failed, len(args)-1)
	}

	return nil
}

func runAlbumRegenerateQR(cmd *cobra.Command, args []string) error {
	album, err := application.AlbumService.RegenerateQRCode(args[0])
	if err != nil {
		return fmt.Errorf("failed to regenerate QR code: %w", err)
	}

	fmt.Fprintf(out, "QR code for %s written to %s\n", album.ID, album.QRCodePath)
	return nil
}

func runAlbumShare(cmd *cobra.Command, args []string) error {
	album, err := application.AlbumService.GetAlbum(args[0])
	if err != nil {
		return fmt.Errorf("failed to get album: %w", err)
	}

	pin := ""
	if shareIncludePin {
		pin = album.Pin
	}

	if err = application.ShareService.ShareAlbum(album, album.Title, pin, shareToName, shareToEmail); err != nil {
		return fmt.Errorf("failed to share album: %w", err)
	}

	fmt.Fprintf(out, "Shared album %s with %s\n", album.ID, shareToEmail)
	return nil
}

func runAlbumDelete(cmd *cobra.Command, args []string) error {
	if err := application.AlbumService.DeleteAlbum(args[0]); err != nil {
		return fmt.Errorf("failed to delete album: %w", err)
	}

	fmt.Fprintf(out, "Deleted album %s\n", args[0])
	return nil
}
