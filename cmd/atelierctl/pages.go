package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"atelier/internal/admin"
	"atelier/internal/domain/models"
	"atelier/internal/lib/validate"

	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List and edit static pages",
}

var pagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pages, drafts included",
	RunE:  runPagesList,
}

var pagesSetContentCmd = &cobra.Command{
	Use:   "set-content SLUG",
	Short: "Replace the JSON content of a page",
	Long: `Replace the content document of one locale. The document is read from
--file (use - for stdin) and must be a JSON object. An empty Arabic document
leaves the stored Arabic content unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: runPagesSetContent,
}

var pagesPublishCmd = &cobra.Command{
	Use:   "publish SLUG",
	Short: "Show or hide a page on the public site",
	Args:  cobra.ExactArgs(1),
	RunE:  runPagesPublish,
}

var (
	contentFile   string
	contentLocale string
	unpublish     bool
)

func init() {
	pagesSetContentCmd.Flags().StringVarP(&contentFile, "file", "f", "-", "JSON file, - for stdin")
	pagesSetContentCmd.Flags().StringVar(&contentLocale, "locale", "en", "content locale: en or ar")
	pagesPublishCmd.Flags().BoolVar(&unpublish, "unpublish", false, "hide the page instead")

	pagesCmd.AddCommand(pagesListCmd)
	pagesCmd.AddCommand(pagesSetContentCmd)
	pagesCmd.AddCommand(pagesPublishCmd)
}

func runPagesList(cmd *cobra.Command, _ []string) error {
	_, s, done, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer done()

	printPages(s, s.ws.Pages.Items())
	return nil
}

func runPagesSetContent(cmd *cobra.Command, args []string) error {
	var (
		raw []byte
		err error
	)
	if contentFile == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(contentFile)
	}
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}

	ctx, s, done, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer done()

	ed := s.ws.Pages
	page, err := findPage(ed.Items(), args[0])
	if err != nil {
		return err
	}
	if err := ed.StartEdit(page); err != nil {
		return err
	}

	var field *admin.JSONField
	if err := ed.Edit(func(f *admin.PageForm) {
		field = &f.ContentEn
		if models.ParseLocale(contentLocale) == models.LocaleAR {
			field = &f.ContentAr
		}
		field.SetText(string(raw))
	}); err != nil {
		return err
	}
	// the editor would submit the last valid document; refuse instead
	if !field.Valid() {
		_ = ed.Cancel()
		return field.Err()
	}

	if err := ed.Submit(ctx); err != nil {
		return noticeErr(ed.Notice(), err)
	}

	printPages(s, ed.Items())
	return nil
}

func runPagesPublish(cmd *cobra.Command, args []string) error {
	ctx, s, done, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer done()

	ed := s.ws.Pages
	page, err := findPage(ed.Items(), args[0])
	if err != nil {
		return err
	}
	if err := ed.StartEdit(page); err != nil {
		return err
	}
	if err := ed.Edit(func(f *admin.PageForm) { f.IsPublished = !unpublish }); err != nil {
		return err
	}

	if err := ed.Submit(ctx); err != nil {
		return noticeErr(ed.Notice(), err)
	}

	printPages(s, ed.Items())
	return nil
}

func findPage(items []models.Page, slug string) (models.Page, error) {
	if !validate.IsSlug(slug) {
		return models.Page{}, fmt.Errorf("invalid slug %q: use lowercase letters, digits and dashes", slug)
	}
	for _, p := range items {
		if p.Slug == slug {
			return p, nil
		}
	}
	return models.Page{}, fmt.Errorf("page %q not found", slug)
}

func printPages(s *session, items []models.Page) {
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tTITLE\tPUBLISHED\tARABIC\tUPDATED")
	for _, p := range items {
		ar := "-"
		if p.ContentAr != nil {
			ar = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n",
			p.Slug,
			models.Resolve(p.TitlePair(), s.loc),
			p.IsPublished,
			ar,
			p.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
	w.Flush()
}
