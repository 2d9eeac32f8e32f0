// Package cli provides the command-line interface for swatch.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/ai"
	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/plugin/manager"
	"github.com/jmylchreest/swatch/internal/store"
	"github.com/jmylchreest/swatch/internal/version"
)

// app is the state shared by every command of one invocation.
type app struct {
	configPath string
	dataDir    string
	verbose    bool
	quiet      bool

	cfg     *config.Config
	logger  hclog.Logger
	plugins *manager.Manager

	// newAIService builds the palette service used by the ai input plugin.
	newAIService func(ctx context.Context) (ai.Service, error)
}

func newApp() *app {
	a := &app{
		cfg: config.Default(),
		logger: hclog.New(&hclog.LoggerOptions{
			Name:   version.Name,
			Level:  hclog.Warn,
			Output: os.Stderr,
			Color:  hclog.AutoColor,
		}),
	}
	a.newAIService = a.geminiService
	a.plugins = manager.NewBuilder().
		WithEnvConfig().
		WithLogger(a.logger).
		WithAIFactory(func(ctx context.Context) (ai.Service, error) {
			return a.newAIService(ctx)
		}).
		Build()
	return a
}

// NewRootCmd builds the swatch command tree.
func NewRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   version.Name,
		Short: "An accessible colour palette generator for websites",
		Long: `swatch generates 15-role website colour palettes from colour theory,
curated presets, remote JSON documents or a generative model, keeps every text
colour readable against its background, and exports the result as CSS,
Tailwind, JSON or YAML.`,
		Version:           version.Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")
	cmd.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "directory for saved palettes and presets")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.SetVersionTemplate(version.String() + "\n")

	cmd.AddCommand(
		a.generateCmd(),
		a.rolesCmd(),
		a.contrastCmd(),
		a.paletteCmd(),
		a.presetCmd(),
		a.moodCmd(),
		a.pluginsCmd(),
		a.versionCmd(),
	)
	return cmd
}

// setup loads configuration and applies global flags before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	switch {
	case a.verbose:
		a.logger.SetLevel(hclog.Debug)
	case a.quiet:
		a.logger.SetLevel(hclog.Error)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	a.cfg = cfg
	if cfg.Path != "" {
		a.logger.Debug("loaded config", "path", cfg.Path)
	}

	// Environment lists were applied when the manager was built and win over the file.
	pc := a.plugins.GetConfig()
	if len(pc.EnabledPlugins) == 0 {
		pc.EnabledPlugins = cfg.Plugins.Enabled
	}
	if len(pc.DisabledPlugins) == 0 {
		pc.DisabledPlugins = cfg.Plugins.Disabled
	}
	a.plugins.UpdateConfig(pc)

	colour.DisableColourOutput = !colourEnabled(cmd.OutOrStdout())
	return nil
}

// colourEnabled reports whether previews may use ANSI colour on w.
func colourEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

func (a *app) openStore() (*store.Store, error) {
	return store.New(a.cfg.DataDir, a.logger)
}

// geminiService builds the Google Gen AI backed service from configuration.
func (a *app) geminiService(ctx context.Context) (ai.Service, error) {
	return ai.NewGeminiService(ctx, ai.Options{
		Backend: a.cfg.AI.Backend,
		Model:   a.cfg.AI.Model,
		APIKey:  os.Getenv(a.cfg.AI.APIKeyEnv),
		Timeout: time.Duration(a.cfg.AI.Timeout),
		Logger:  a.logger.Named("ai"),
	})
}

// status writes progress output unless --quiet is set.
func (a *app) status(cmd *cobra.Command, format string, args ...any) {
	if a.quiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}

func (a *app) versionCmd() *cobra.Command {
	var short, asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case asJSON:
				return writeJSON(cmd.OutOrStdout(), version.GetInfo())
			case short:
				fmt.Fprintln(cmd.OutOrStdout(), version.Version)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print build metadata as JSON")
	cmd.MarkFlagsMutuallyExclusive("short", "json")
	return cmd
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
