package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/aouyang1/mouseglass/api/client"
	"github.com/aouyang1/mouseglass/contact"
	"github.com/aouyang1/mouseglass/gallery"
	"github.com/spf13/cobra"
)

// CLI flags
var (
	serverFlag  string
	sessionFlag string

	categoryFlag string
	nativeFlag   bool
	outputFlag   string
	waitFlag     bool
	contactForm  contact.Form
)

var rootCmd = &cobra.Command{
	Use:   "mouseglassctl",
	Short: "Browse the mouse gallery from the command line",
	Long: `mouseglassctl talks to a running mouseglass server.

Each run starts a new session unless --session is given. The session id is
printed to stderr so favorites and the selection can be carried between runs.

Examples:
  mouseglassctl images --category wild
  mouseglassctl favorite 3 --session 6f1c...
  mouseglassctl download 6 -o harvest.png
  mouseglassctl contact --name Ada --email ada@example.com --subject Hi --message "Love the mice" --wait`,
	SilenceUsage: true,
}

func init() {
	server := os.Getenv("MG_SERVER")
	if server == "" {
		server = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", server, "Base URL of the mouseglass server")
	rootCmd.PersistentFlags().StringVar(&sessionFlag, "session", "", "Resume an existing session id")

	imagesCmd.Flags().StringVarP(&categoryFlag, "category", "c", "", "Category to list (all, wild, pet, lab, tech)")
	shareCmd.Flags().BoolVar(&nativeFlag, "native", false, "Ask for a native share payload instead of the clipboard fallback")
	downloadCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file (defaults to the server's file name)")

	contactCmd.Flags().StringVar(&contactForm.Name, "name", "", "Your name")
	contactCmd.Flags().StringVar(&contactForm.Email, "email", "", "Your email")
	contactCmd.Flags().StringVar(&contactForm.Subject, "subject", "", "Message subject")
	contactCmd.Flags().StringVar(&contactForm.Message, "message", "", "Message body")
	contactCmd.Flags().BoolVar(&waitFlag, "wait", false, "Wait until the message is sent")

	rootCmd.AddCommand(imagesCmd, categoriesCmd, favoriteCmd, favoritesCmd, selectCmd, shareCmd, downloadCmd, contactCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newClient() (*client.GalleryClient, error) {
	gc, err := client.NewGalleryClient(serverFlag)
	if err != nil {
		return nil, err
	}
	if sessionFlag != "" {
		if err := gc.SetSession(sessionFlag); err != nil {
			return nil, err
		}
	}
	return gc, nil
}

// withClient runs fn with a client and reports the session id afterwards.
func withClient(fn func(ctx context.Context, cmd *cobra.Command, gc *client.GalleryClient, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		gc, err := newClient()
		if err != nil {
			return err
		}
		if err := fn(cmd.Context(), cmd, gc, args); err != nil {
			return err
		}
		if id := gc.Session(); id != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "session: %s\n", id)
		}
		return nil
	}
}

func parseIDArg(args []string) (int, error) {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid image id %q", args[0])
	}
	return id, nil
}

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "List gallery images",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, cmd *cobra.Command, gc *client.GalleryClient, _ []string) error {
		resp, err := gc.Images(ctx, gallery.ParseCategory(categoryFlag))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tLIKES\tFAVORITE")
		for _, img := range resp.Images {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%t\n", img.ID, img.Title, img.Category, img.Likes, img.Favorite)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d images in %s\n", resp.Total, resp.Category.DisplayName())
		return nil
	}),
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories and their image counts",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, cmd *cobra.Command, gc *client.GalleryClient, _ []string) error {
		categories, err := gc.Categories(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOUNT")
		for _, c := range categories {
			fmt.Fprintf(w, "%s\t%s\t%d\n", c.Category, c.Name, c.Count)
		}
		return w.Flush()
	}),
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle an image's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, cmd *cobra.Command, gc *client.GalleryClient, args []string) error {
		id, err := parseIDArg(args)
		if err != nil {
			return err
		}
		resp, err := gc.ToggleFavorite(ctx, id)
		if err != nil {
			return err
		}
		state := "removed from"
		if resp.Favorite {
			state = "added to"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "image %d %s favorites (%d total)\n", resp.ID, state, resp.Count)
		return nil
	}),
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorite image ids",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, cmd *cobra.Command, gc *client.GalleryClient, _ []string) error {
		ids, err := gc.Favorites(ctx)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no favorites")
			return nil
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	}),
}

var selectCmd = &cobra.Command{
	Use:   "select <id>",
	Short: "Open an image in the overlay and show its details",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, cmd *cobra.Command, gc *client.GalleryClient, args []string) error {
		id, err := parseIDArg(args)
		if err != nil {
			return err
		}
		rec, err := gc.Select(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]\n%s\n%d likes\n", rec.Title, rec.Category.DisplayName(), rec.Description, rec.Likes)
		return nil
	}),
}

var shareCmd = &cobra.Command{
	Use:   "share <id>",
	Short: "Get the share payload for an image",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, cmd *cobra.Command, gc *client.GalleryClient, args []string) error {
		id, err := parseIDArg(args)
		if err != nil {
			return err
		}
		result, err := gc.Share(ctx, id, nativeFlag)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "method: %s\nurl: %s\n", result.Method, result.URL)
		if result.Title != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "title: %s\ntext: %s\n", result.Title, result.Text)
		}
		return nil
	}),
}

var downloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Download an image",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, cmd *cobra.Command, gc *client.GalleryClient, args []string) error {
		id, err := parseIDArg(args)
		if err != nil {
			return err
		}

		tmp, err := os.CreateTemp(".", ".mouseglass-download-*")
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		defer os.Remove(tmp.Name())

		name, err := gc.Download(ctx, id, tmp)
		if closeErr := tmp.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return err
		}

		out := outputFlag
		if out == "" {
			out = filepath.Base(name)
		}
		if err := os.Rename(tmp.Name(), out); err != nil {
			return fmt.Errorf("failed to save %s: %w", out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", out)
		return nil
	}),
}

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message through the contact form",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, cmd *cobra.Command, gc *client.GalleryClient, _ []string) error {
		resp, err := gc.SubmitContact(ctx, contactForm)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "state: %s\n", resp.State)
		if !waitFlag {
			return nil
		}

		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for resp.State == contact.Submitting {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
			if resp, err = gc.ContactStatus(ctx); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "state: %s\n", resp.State)
		return nil
	}),
}
