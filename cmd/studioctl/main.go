// Command studioctl inspects the content the site would render: it normalizes
// CMS records, applies gallery filters, lists related items and resolves
// YouTube links without starting the web server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/studio-web/internal/cms"
	"finitefield.org/studio-web/internal/format"
	"finitefield.org/studio-web/internal/gallery"
	"finitefield.org/studio-web/internal/observability"
	"finitefield.org/studio-web/internal/youtube"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	cmsURL   string
	seedFile string
	lang     string
	timeout  time.Duration
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "studioctl",
		Short:        "Inspect studio site content",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.cmsURL, "cms", os.Getenv("STUDIO_WEB_CMS_BASE_URL"), "CMS base URL (empty uses the local dataset)")
	root.PersistentFlags().StringVar(&opts.seedFile, "seed", os.Getenv("STUDIO_WEB_SEED_FILE"), "YAML seed file replacing the built-in dataset")
	root.PersistentFlags().StringVar(&opts.lang, "lang", "ko", "content language")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "CMS request timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log CMS fallbacks to stderr")

	root.AddCommand(
		newNormalizeCmd(opts),
		newFilterCmd(opts),
		newRelatedCmd(opts),
		newYouTubeCmd(),
	)
	return root
}

// client builds the CMS client the same way the web server does.
func (o *rootOptions) client() (*cms.Client, error) {
	logger := zap.NewNop()
	if o.verbose {
		l, err := observability.NewLogger("debug", true)
		if err != nil {
			return nil, err
		}
		logger = l
	}
	clientOpts := []cms.Option{cms.WithTimeout(o.timeout), cms.WithLogger(logger)}
	if o.seedFile != "" {
		ds, err := cms.LoadSeedFile(o.seedFile)
		if err != nil {
			return nil, err
		}
		clientOpts = append(clientOpts, cms.WithFallback(ds))
	}
	return cms.NewClient(o.cmsURL, clientOpts...), nil
}

func (o *rootOptions) items(cmd *cobra.Command, section string) ([]gallery.Item, error) {
	if !cms.IsGallerySection(section) {
		return nil, fmt.Errorf("unknown section %q (want one of %v)", section, cms.GallerySections)
	}
	c, err := o.client()
	if err != nil {
		return nil, err
	}
	return c.Gallery(cmd.Context(), section, o.lang)
}

func newNormalizeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <section>",
		Short: "Print the normalized items of a gallery section as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.items(cmd, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), itemOutputs(items))
		},
	}
}

func newFilterCmd(opts *rootOptions) *cobra.Command {
	var (
		subs    []string
		keyword string
	)
	cmd := &cobra.Command{
		Use:   "filter <section>",
		Short: "Print the items visible for a sub-category selection and keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.items(cmd, args[0])
			if err != nil {
				return err
			}
			state := gallery.State{}.ApplyFilter(subs...).SetKeyword(keyword)
			return writeJSON(cmd.OutOrStdout(), itemOutputs(state.Visible(items)))
		},
	}
	cmd.Flags().StringSliceVar(&subs, "sub", nil, "sub-category to include (repeatable)")
	cmd.Flags().StringVar(&keyword, "q", "", "search keyword")
	return cmd
}

func newRelatedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "related <section> <id>",
		Short: "Print the items related to one item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.items(cmd, args[0])
			if err != nil {
				return err
			}
			_, related, ok := gallery.State{}.SelectItem(args[1]).Detail(items)
			if !ok {
				return fmt.Errorf("item %q not found in %s", args[1], args[0])
			}
			out := make([]relatedOutput, 0, len(related))
			for _, ref := range related {
				out = append(out, relatedOutput{
					ID:        ref.ID,
					Title:     ref.Title,
					Slug:      ref.Slug,
					Thumbnail: ref.Thumbnail,
					Date:      format.ISODate(ref.Date),
				})
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newYouTubeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "youtube <url>",
		Short: "Resolve a YouTube link to its id, embed URL and thumbnail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := youtube.NewResolver(nil).Resolve(args[0])
			if !ok {
				return fmt.Errorf("not a YouTube link: %q", args[0])
			}
			return writeJSON(cmd.OutOrStdout(), videoOutput{
				ID:        v.ID,
				EmbedURL:  v.EmbedURL,
				Thumbnail: v.ThumbnailURL,
				Shorts:    v.Shorts,
			})
		},
	}
}

type itemOutput struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug,omitempty"`
	Category    string   `json:"category,omitempty"`
	SubCategory []string `json:"subCategory,omitempty"`
	ContentType int      `json:"contentType"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Videos      []string `json:"videos,omitempty"`
	Images      []string `json:"images,omitempty"`
	Date        string   `json:"date,omitempty"`
}

type relatedOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Date      string `json:"date,omitempty"`
}

type videoOutput struct {
	ID        string `json:"id"`
	EmbedURL  string `json:"embedUrl"`
	Thumbnail string `json:"thumbnail"`
	Shorts    bool   `json:"shorts"`
}

func itemOutputs(items []gallery.Item) []itemOutput {
	out := make([]itemOutput, 0, len(items))
	for _, it := range items {
		var videos []string
		if it.VideoURL != "" {
			videos = append(videos, it.VideoURL)
		}
		videos = append(videos, it.VideoURLs...)
		out = append(out, itemOutput{
			ID:          it.ID,
			Title:       it.Title,
			Slug:        it.Slug,
			Category:    it.Category,
			SubCategory: []string(it.SubCategory),
			ContentType: int(it.ContentType),
			Thumbnail:   it.Thumbnail(),
			Videos:      videos,
			Images:      it.AllImages(),
			Date:        format.ISODate(it.Date()),
		})
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
