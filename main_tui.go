package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nodegraph/canvas"
	"nodegraph/demo"
	"nodegraph/export"
	"nodegraph/graph"
	"nodegraph/settings"
	"nodegraph/terminal"
)

func newEditCmd() *cobra.Command {
	var (
		settingsPath string
		exportFormat string
		exportDir    string
		empty        bool
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a graph in the terminal",
		Long: `Edit opens the interactive editor. Drag nodes with the left button, drag
from a node's handle to connect it, right-click for context menus and use
the wheel to zoom.

Keys:
  /        add a node from the catalog
  Delete   delete the selection
  Esc      cancel the pending connection and clear the selection
  + -      zoom          arrows  pan
  s        toggle snap   F       fit to screen
  f        toggle fast-forward
  e        export        q       quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(exportFormat)
			if err != nil {
				return err
			}
			exporter, err := export.NewExporter(f)
			if err != nil {
				return err
			}

			logger, err := newLogger(true)
			if err != nil {
				return err
			}
			defer logger.Sync()

			s, err := settings.Load(settingsPath)
			if err != nil {
				return err
			}
			reg, err := loadRegistry(logger)
			if err != nil {
				return err
			}
			c, store := newDemoCanvas(logger, reg, canvas.WithSettings(s))
			if !empty {
				store.Seed()
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialize screen: %w", err)
			}
			defer screen.Fini()

			app := terminal.New(screen, c, terminal.Options{
				Logger:      logger,
				Catalog:     reg,
				CatalogKind: demo.KindNode,
				Export: func(snap graph.Snapshot) (string, error) {
					out, err := exporter.Export(snap)
					if err != nil {
						return "", err
					}
					path := filepath.Join(exportDir, "graph"+exporter.GetFileExtension())
					if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
						return "", err
					}
					logger.Info("exported", zap.String("file", path))
					return "exported " + path, nil
				},
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			logger.Info("editor started", zap.String("settings", s.Path()), zap.Int("nodes", len(c.Nodes())))
			runErr := app.Run(ctx)
			if errors.Is(runErr, context.Canceled) {
				runErr = nil
			}
			if err := s.Save(); err != nil {
				logger.Warn("failed to save settings", zap.Error(err))
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&settingsPath, "settings", settings.DefaultPath(), "Settings file")
	cmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.FormatMermaid), "Format written by the export key")
	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "Directory the export key writes to")
	cmd.Flags().BoolVar(&empty, "empty", false, "Start with an empty canvas instead of the demo graph")
	return cmd
}
