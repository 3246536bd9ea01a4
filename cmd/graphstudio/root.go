package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"graphstudio/internal/backend"
	"graphstudio/internal/codec"
	"graphstudio/internal/config"
	"graphstudio/internal/domain"
	"graphstudio/internal/editor"
	"graphstudio/internal/logging"
	"graphstudio/internal/render"
	"graphstudio/internal/service"
)

var version = "0.3.0"

// globals are the persistent flags shared by every subcommand
type globals struct {
	configPath string
	backendURL string
	logLevel   string
}

func rootCmd() *cobra.Command {
	g := &globals{}
	cmd := &cobra.Command{
		Use:   "graphstudio",
		Short: "Interactive graph editor and algorithm visualiser",
		Long: render.Brand.Sprint("graphstudio") + ": draw a graph and watch algorithms run on it step by step\n" +
			render.Subtle.Sprint("Algorithms are computed by a separate backend service"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file (default: search "+config.EnvConfigPath+", ./"+config.ConfigFileName+", XDG, /etc)")
	cmd.PersistentFlags().StringVar(&g.backendURL, "backend", "", "computation backend URL (overrides config)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	cmd.AddCommand(
		serveCmd(g),
		playCmd(g),
		convertCmd(g),
		buildCmd(g),
		configCmd(g),
	)
	return cmd
}

// load reads the config file and applies flag overrides
func (g *globals) load() (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if g.configPath != "" {
		cfg, path, err = config.LoadFromPath(g.configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, path, err
	}

	if g.backendURL != "" {
		cfg.Backend.URL = g.backendURL
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func newLogger(cfg *config.Config) (*slog.Logger, *slog.LevelVar) {
	level, _ := cfg.Log.SlogLevel()
	return logging.New(os.Stderr, level)
}

func newClient(cfg *config.Config, logger *slog.Logger) *backend.Client {
	return backend.New(cfg.Backend.URL, &http.Client{Timeout: cfg.Backend.Timeout.Duration()}, logger)
}

func settingsFrom(cfg *config.Config) service.Settings {
	return service.Settings{
		Defaults: editor.Defaults{
			Weight:   cfg.Editor.DefaultWeight,
			Capacity: cfg.Capacity(),
		},
		StepDelay: cfg.StepDelay(),
	}
}

// readDocument parses a graph file, YAML by extension and JSON otherwise.
// "-" reads JSON from stdin.
func readDocument(path string, stdin io.Reader) (*domain.ImportDocument, error) {
	var imp codec.Importer = codec.NewJSONCodec()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		imp = codec.NewYAMLCodec()
	}

	if path == "-" {
		return imp.Parse(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := imp.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// openWorkspace builds a foreground workspace seeded from a graph file
func openWorkspace(cmd *cobra.Command, g *globals, graphPath string) (*service.Workspace, *config.Config, error) {
	cfg, _, err := g.load()
	if err != nil {
		return nil, nil, err
	}
	logger, _ := newLogger(cfg)

	ws := service.NewWorkspace(nil, service.Options{
		Client:   newClient(cfg, logger),
		Settings: settingsFrom(cfg),
		Logger:   logger,
	})

	if graphPath != "" {
		in, err := readDocument(graphPath, cmd.InOrStdin())
		if err != nil {
			return nil, nil, err
		}
		if _, err := ws.ImportDocument(in); err != nil {
			return nil, nil, err
		}
	}
	return ws, cfg, nil
}
