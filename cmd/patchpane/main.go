// Package main wires the chat panel together: config, logging, workspace
// watching, the Gemini-backed engine, and the Bubble Tea UI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Cyclone1070/patchpane/internal/config"
	"github.com/Cyclone1070/patchpane/internal/engine"
	"github.com/Cyclone1070/patchpane/internal/gateway"
	"github.com/Cyclone1070/patchpane/internal/logging"
	"github.com/Cyclone1070/patchpane/internal/pathutil"
	"github.com/Cyclone1070/patchpane/internal/provider/gemini"
	"github.com/Cyclone1070/patchpane/internal/selector"
	"github.com/Cyclone1070/patchpane/internal/store"
	"github.com/Cyclone1070/patchpane/internal/ui"
	"github.com/Cyclone1070/patchpane/internal/ui/models"
	"github.com/Cyclone1070/patchpane/internal/ui/services"
	"github.com/Cyclone1070/patchpane/internal/ui/views"
	"github.com/Cyclone1070/patchpane/internal/workspace"
)

// storeEvents bridges store notifications to the UI and the workspace cache.
type storeEvents struct {
	ui       *ui.UI
	ws       *workspace.Workspace
	resolver *pathutil.Resolver
}

func (e *storeEvents) OpenFile(absPath string) {
	e.ui.WriteStatus("Opened " + e.resolver.Display(absPath))
}

func (e *storeEvents) FilesystemChanged() {
	e.ws.Invalidate()
}

func main() {
	var (
		root  string
		model string
		debug bool
	)
	pflag.StringVar(&root, "root", "", "project root (defaults to the working directory)")
	pflag.StringVar(&model, "model", "", "override the configured model name")
	pflag.BoolVar(&debug, "debug", false, "enable debug logging")
	pflag.Parse()

	// Load configuration (from defaults + ~/.config/patchpane/config.json)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}
	if model != "" {
		cfg.Model.Name = model
	}

	logger, err := logging.New(cfg.LogFilePath(), debug || cfg.Logging.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v\n", err)
		logger = zap.NewNop()
	}
	defer logger.Sync()

	views.Configure(cfg.UI)

	if root == "" {
		root, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to get working directory: %v\n", err)
			os.Exit(1)
		}
	}
	root, err = filepath.Abs(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid root %q: %v\n", root, err)
		os.Exit(1)
	}

	if err := run(root, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(root string, cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fs := gateway.NewOSFileAccess()
	resolver := pathutil.NewResolver(root)
	ws := workspace.New(root, logger)
	defer ws.Stop()

	channels := ui.NewUIChannels()
	userInterface := ui.NewUI(channels, services.NewGlamourRenderer())

	events := &storeEvents{ui: userInterface, ws: ws, resolver: resolver}
	st := store.New(fs, resolver, events, logger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()

		select {
		case <-userInterface.Ready():
		case <-ctx.Done():
			return
		}

		if err := ws.Watch(ctx); err != nil {
			logger.Warn("filesystem watching disabled", zap.Error(err))
			userInterface.WriteStatus("Filesystem watching disabled")
		}

		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			userInterface.WriteError("GEMINI_API_KEY environment variable is required")
			return // DEGRADED MODE: UI runs but questions cannot be answered
		}

		client, err := gemini.NewClient(ctx, apiKey)
		if err != nil {
			userInterface.WriteError(fmt.Sprintf("failed to create Gemini client: %v", err))
			return
		}

		completion := gemini.NewCompletion(client, cfg.Model.Name, cfg.Model.MaxOutputTokens)
		sel := selector.New(completion, fs, cfg.Selection, logger)
		eng := engine.New(completion, sel, st, ws, logger)

		userInterface.WriteStatus("Ready")
		commandLoop(ctx, eng, st, userInterface)
	}()

	err := userInterface.Start()
	cancel()
	wg.Wait()
	return err
}

// commandLoop consumes UI commands until the context is cancelled.
func commandLoop(ctx context.Context, eng *engine.Engine, st *store.Store, userInterface *ui.UI) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-userInterface.Commands():
			handleCommand(ctx, eng, st, userInterface, cmd)
		}
	}
}

func handleCommand(ctx context.Context, eng *engine.Engine, st *store.Store, userInterface *ui.UI, cmd ui.UICommand) {
	args := make(map[string]any, len(cmd.Args))
	for k, v := range cmd.Args {
		args[k] = v
	}

	result, err := eng.Execute(ctx, engine.Command{Name: cmd.Type, Args: args})
	if err != nil {
		userInterface.WriteError(err.Error())
		pushEdits(st, userInterface)
		return
	}

	if answer, ok := result.(*engine.Answer); ok {
		userInterface.WriteMessage(answer.Text)
		userInterface.WriteTokenCount(eng.TokenEstimate())
	}

	switch cmd.Type {
	case ui.CommandAccept:
		userInterface.WriteStatus("Edit applied")
	case ui.CommandReject:
		userInterface.WriteStatus("Edit rejected")
	}

	pushEdits(st, userInterface)
}

// pushEdits publishes a snapshot of the pending edits to the review pane.
func pushEdits(st *store.Store, userInterface *ui.UI) {
	pending := st.List()
	edits := make([]models.ReviewEdit, 0, len(pending))
	for _, e := range pending {
		edits = append(edits, models.ReviewEdit{
			ID:              e.ID,
			DisplayPath:     e.DisplayPath,
			Action:          string(e.Action),
			OriginalContent: e.OriginalContent,
			NewContent:      e.NewContent,
		})
	}
	userInterface.WriteEdits(edits)
}
