package main

import (
	"fmt"
	"text/tabwriter"

	"atelier/internal/admin"
	"atelier/internal/domain/models"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "List and set site settings",
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List settings",
	RunE:  runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Print the value of a setting in the selected language",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set NAME",
	Short: "Create or update a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsSet,
}

var (
	valueEn     string
	valueAr     string
	description string
	fallback    string
)

func init() {
	settingsSetCmd.Flags().StringVar(&valueEn, "en", "", "English value")
	settingsSetCmd.Flags().StringVar(&valueAr, "ar", "", "Arabic value")
	settingsSetCmd.Flags().StringVar(&description, "description", "", "what the setting is for")

	settingsGetCmd.Flags().StringVar(&fallback, "default", "", "printed when the setting does not exist")

	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsList(cmd *cobra.Command, _ []string) error {
	_, s, done, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer done()

	printSettings(s, s.ws.Settings.Items())
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	ctx, s, done, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer done()

	v, err := s.app.Settings.Value(ctx, args[0], s.loc, fallback)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, v)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	ctx, s, done, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer done()

	ed := s.ws.Settings
	name := args[0]

	var existing *models.Setting
	for _, it := range ed.Items() {
		if it.Name == name {
			existing = &it
			break
		}
	}

	if existing != nil {
		err = ed.StartEdit(*existing)
	} else {
		err = ed.StartCreate()
	}
	if err != nil {
		return err
	}

	changed := cmd.Flags().Changed
	if err := ed.Edit(func(f *admin.SettingForm) {
		f.Name = name
		if changed("en") {
			f.ValueEn = valueEn
		}
		if changed("ar") {
			f.ValueAr = valueAr
		}
		if changed("description") {
			f.Description = description
		}
	}); err != nil {
		return err
	}

	if err := ed.Submit(ctx); err != nil {
		return noticeErr(ed.Notice(), err)
	}

	printSettings(s, ed.Items())
	return nil
}

func printSettings(s *session, items []models.Setting) {
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVALUE\tDESCRIPTION")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			it.Name,
			models.Resolve(it.ValuePair(), s.loc),
			models.StringOrEmpty(it.Description),
		)
	}
	w.Flush()
}
