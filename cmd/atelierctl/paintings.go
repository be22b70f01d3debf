package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"atelier/internal/admin"
	"atelier/internal/domain/models"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var paintingsCmd = &cobra.Command{
	Use:   "paintings",
	Short: "List and edit paintings",
}

var paintingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List paintings in display order",
	RunE:  runPaintingsList,
}

var paintingsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a painting",
	Long: `Add a painting. Title, year, medium, dimensions, collection, theme and
description are required; Arabic values are optional. A known collection
fills in its Arabic name automatically.`,
	RunE: runPaintingsCreate,
}

var paintingsEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change the given fields of a painting",
	Args:  cobra.ExactArgs(1),
	RunE:  runPaintingsEdit,
}

var paintingsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a painting",
	Args:  cobra.ExactArgs(1),
	RunE:  runPaintingsDelete,
}

// paintingFlags mirrors PaintingForm
type paintingFlags struct {
	title, titleAr             string
	year                       string
	medium, mediumAr           string
	dimensions                 string
	collection, collectionAr   string
	theme                      string
	imageURL, imageFile        string
	description, descriptionAr string
	featured                   bool
	order                      int
}

var pf paintingFlags

var (
	listFeatured   bool
	listCollection string
)

func init() {
	for _, c := range []*cobra.Command{paintingsCreateCmd, paintingsEditCmd} {
		f := c.Flags()
		f.StringVar(&pf.title, "title", "", "title (English)")
		f.StringVar(&pf.titleAr, "title-ar", "", "title (Arabic)")
		f.StringVar(&pf.year, "year", "", "year or range, e.g. 2019-2021")
		f.StringVar(&pf.medium, "medium", "", "medium (English)")
		f.StringVar(&pf.mediumAr, "medium-ar", "", "medium (Arabic)")
		f.StringVar(&pf.dimensions, "dimensions", "", "dimensions, free text")
		f.StringVar(&pf.collection, "collection", "", "collection (series) name")
		f.StringVar(&pf.collectionAr, "collection-ar", "", "collection name (Arabic)")
		f.StringVar(&pf.theme, "theme", "", "theme, one of "+strings.Join(models.Themes, ", "))
		f.StringVar(&pf.imageURL, "image-url", "", "image URL")
		f.StringVar(&pf.imageFile, "image", "", "image file to attach")
		f.StringVar(&pf.description, "description", "", "description (English)")
		f.StringVar(&pf.descriptionAr, "description-ar", "", "description (Arabic)")
		f.BoolVar(&pf.featured, "featured", false, "show on the home page")
		f.IntVar(&pf.order, "order", 0, "display order")
	}

	paintingsListCmd.Flags().BoolVar(&listFeatured, "featured", false, "only featured paintings")
	paintingsListCmd.Flags().StringVar(&listCollection, "collection", "", "only paintings of this collection")

	paintingsDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")

	paintingsCmd.AddCommand(paintingsListCmd)
	paintingsCmd.AddCommand(paintingsCreateCmd)
	paintingsCmd.AddCommand(paintingsEditCmd)
	paintingsCmd.AddCommand(paintingsDeleteCmd)
}

// apply copies the flags the user actually passed into the form.
func (p paintingFlags) apply(cmd *cobra.Command, f *admin.PaintingForm) {
	changed := cmd.Flags().Changed

	set := func(name string, dst *string, v string) {
		if changed(name) {
			*dst = v
		}
	}

	set("title", &f.Title, p.title)
	set("title-ar", &f.TitleAr, p.titleAr)
	set("year", &f.Year, p.year)
	set("medium", &f.Medium, p.medium)
	set("medium-ar", &f.MediumAr, p.mediumAr)
	set("dimensions", &f.Dimensions, p.dimensions)
	set("collection-ar", &f.CollectionAr, p.collectionAr)
	if changed("collection") {
		f.SelectCollection(p.collection)
	}
	set("theme", &f.Theme, p.theme)
	set("image-url", &f.ImageURL, p.imageURL)
	set("description", &f.Description, p.description)
	set("description-ar", &f.DescriptionAr, p.descriptionAr)
	if changed("featured") {
		f.IsFeatured = p.featured
	}
	if changed("order") {
		f.DisplayOrder = p.order
	}
}

func runPaintingsList(cmd *cobra.Command, _ []string) error {
	ctx, s, done, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer done()

	items := s.ws.Paintings.Items()
	switch {
	case listCollection != "":
		items, err = s.app.Paintings.GetByCollection(ctx, listCollection)
	case listFeatured:
		items, err = s.app.Paintings.GetFeatured(ctx)
	}
	if err != nil {
		return err
	}

	if listFeatured && listCollection != "" {
		featured := items[:0]
		for _, p := range items {
			if p.IsFeatured {
				featured = append(featured, p)
			}
		}
		items = featured
	}

	printPaintings(s, items)
	return nil
}

func runPaintingsCreate(cmd *cobra.Command, _ []string) error {
	ctx, s, done, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer done()

	ed := s.ws.Paintings
	if err := ed.StartCreate(); err != nil {
		return err
	}
	if err := ed.Edit(func(f *admin.PaintingForm) { pf.apply(cmd, f) }); err != nil {
		return err
	}
	if err := attach(ctx, s, ed); err != nil {
		return err
	}

	if err := ed.Submit(ctx); err != nil {
		return noticeErr(ed.Notice(), err)
	}

	printPaintings(s, ed.Items())
	return nil
}

func runPaintingsEdit(cmd *cobra.Command, args []string) error {
	ctx, s, done, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer done()

	ed := s.ws.Paintings
	p, err := findPainting(ed.Items(), args[0])
	if err != nil {
		return err
	}

	if err := ed.StartEdit(p); err != nil {
		return err
	}
	if err := ed.Edit(func(f *admin.PaintingForm) { pf.apply(cmd, f) }); err != nil {
		return err
	}
	if err := attach(ctx, s, ed); err != nil {
		return err
	}

	if err := ed.Submit(ctx); err != nil {
		return noticeErr(ed.Notice(), err)
	}

	printPaintings(s, ed.Items())
	return nil
}

func runPaintingsDelete(cmd *cobra.Command, args []string) error {
	ctx, s, done, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer done()

	ed := s.ws.Paintings
	p, err := findPainting(ed.Items(), args[0])
	if err != nil {
		return err
	}

	deleted, err := ed.Delete(ctx, p, func(p models.Painting) bool {
		return confirm(cmd, fmt.Sprintf("Delete %s %q?", ed.Entity(), p.Title))
	})
	if err != nil {
		return noticeErr(ed.Notice(), err)
	}
	if !deleted {
		fmt.Fprintln(s.out, "cancelled")
		return nil
	}

	printPaintings(s, ed.Items())
	return nil
}

func attach(ctx context.Context, s *session, ed *admin.PaintingEditor) error {
	if pf.imageFile == "" {
		return nil
	}

	data, err := os.ReadFile(pf.imageFile)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	ref, err := ed.AttachImage(ctx, filepath.Base(pf.imageFile), data)
	if err != nil {
		return noticeErr(ed.Notice(), err)
	}

	if len(ref) > 64 {
		ref = ref[:64] + "..."
	}
	fmt.Fprintf(s.out, "image: %s\n", ref)
	return nil
}

func findPainting(items []models.Painting, raw string) (models.Painting, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return models.Painting{}, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	for _, p := range items {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Painting{}, fmt.Errorf("painting %s not found", id)
}

func printPaintings(s *session, items []models.Painting) {
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tID\tTITLE\tYEAR\tCOLLECTION\tFEATURED")
	for _, p := range items {
		featured := ""
		if p.IsFeatured {
			featured = "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.DisplayOrder,
			p.ID,
			models.Resolve(p.TitlePair(), s.loc),
			p.Year,
			models.Resolve(p.CollectionPair(), s.loc),
			featured,
		)
	}
	w.Flush()
}
