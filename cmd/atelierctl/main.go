package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"atelier/internal/admin"
	"atelier/internal/app"
	"atelier/internal/config"
	"atelier/internal/domain/models"
	"atelier/internal/lib/logger/handlers/slogdiscard"
	"atelier/internal/lib/logger/handlers/slogpretty"
	"atelier/internal/services/probe"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	lang       string
	timeout    time.Duration
	assumeYes  bool
)

var rootCmd = &cobra.Command{
	Use:   "atelierctl",
	Short: "Manage the paintings, pages and settings of the portfolio",
	Long: `atelierctl edits the portfolio content through the same admin workflow
as the web dashboard: the store is probed first, every change is validated,
and the list is re-read after each save.`,
	SilenceUsage: true,
}

// probeCmd reports whether the configured store can be used
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check the store connection",
	RunE:  runProbe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (or set CONFIG_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "en", "display language: en or ar")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "operation timeout")

	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(paintingsCmd)
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(settingsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		return config.MustLoadEnv()
	}
	return config.MustLoadPath(path)
}

func logger() *slog.Logger {
	if !verbose {
		return slogdiscard.NewDiscardLogger()
	}

	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug},
	}
	return slog.New(opts.NewPrettyHandler(os.Stderr))
}

type session struct {
	app *app.App
	ws  *admin.Workspace
	out io.Writer
	loc models.Locale
}

func (s *session) Close() {
	s.app.Close()
}

// openWorkspace builds the app and opens the admin workspace behind the probe.
func openWorkspace(cmd *cobra.Command) (context.Context, *session, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)

	log := logger()
	a, err := app.New(ctx, log, loadConfig())
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}

	s := &session{
		app: a,
		ws:  a.Workspace(),
		out: cmd.OutOrStdout(),
		loc: models.ParseLocale(lang),
	}

	if err := s.ws.Open(ctx); err != nil {
		setup := s.ws.SetupRequired()
		s.Close()
		cancel()
		if setup {
			return nil, nil, nil, fmt.Errorf("%w\nrun `atelierctl probe` for details", err)
		}
		return nil, nil, nil, err
	}

	// the parent command names the tab: atelierctl paintings list
	if cmd.Parent() != nil {
		if tab, err := admin.ParseTab(cmd.Parent().Name()); err == nil {
			s.ws.SwitchTab(tab)
		}
	}
	log.Debug("workspace open", slog.String("tab", string(s.ws.Active())))

	return ctx, s, func() {
		s.Close()
		cancel()
	}, nil
}

func runProbe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	a, err := app.New(ctx, logger(), loadConfig())
	if err != nil {
		return err
	}
	defer a.Close()

	status := a.Probe.Check(ctx)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", status, probe.Describe(status))

	if status != probe.StatusOK {
		return fmt.Errorf("store is not ready (%s)", status)
	}
	return nil
}

// noticeErr prefers the editor's notice text over the wrapped error chain.
func noticeErr(n admin.Notice, err error) error {
	if err == nil {
		return nil
	}
	if n.Kind == admin.NoticeError && n.Text != "" {
		return errors.New(n.Text)
	}
	return err
}

func confirm(cmd *cobra.Command, question string) bool {
	if assumeYes {
		return true
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)

	var answer string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &answer); err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}
