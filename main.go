package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"nodegraph/canvas"
	"nodegraph/catalog"
	"nodegraph/demo"
	"nodegraph/export"
	"nodegraph/graph"
)

var (
	catalogPath string
	logLevel    string
	logFile     string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nodegraph",
		Short: "Node-graph editor for the terminal",
		Long: `nodegraph edits graphs of typed nodes, connections and groups.
Nodes are created from a catalog of node types, either the built-in demo
catalog or a YAML/TOML declaration file.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&catalogPath, "catalog", "", "Node catalog file (.yaml, .yml or .toml); built-in catalog if empty")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&logFile, "log-file", "", "Write logs to this file")

	root.AddCommand(newEditCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newExportCmd())
	return root
}

// newLogger builds the development logger. Without --log-file, logs go to
// stderr, or nowhere when the terminal belongs to the editor.
func newLogger(quiet bool) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	switch {
	case logFile != "":
		cfg.OutputPaths = []string{logFile}
		cfg.ErrorOutputPaths = []string{logFile}
	case quiet:
		return zap.NewNop(), nil
	}
	return cfg.Build()
}

// loadRegistry registers the catalog file, or the built-in catalog.
func loadRegistry(logger *zap.Logger) (*catalog.Registry, error) {
	var decls []catalog.Declaration
	if catalogPath != "" {
		var err error
		if decls, err = catalog.LoadFile(catalogPath); err != nil {
			return nil, err
		}
	}
	reg := catalog.NewRegistry(logger)
	demo.Register(reg, decls)
	return reg, nil
}

// newDemoCanvas builds a canvas bound to a demo store.
func newDemoCanvas(logger *zap.Logger, reg *catalog.Registry, opts ...canvas.Option) (*demo.Canvas, *demo.Store) {
	store := demo.NewStore(logger)
	opts = append(opts, canvas.WithLogger(logger))
	c := canvas.New[*demo.Operator, *demo.Wire, *demo.Frame](store.Config(reg), opts...)
	store.Bind(c)
	return c, store
}

// Catalog ---------------------------------------------------------------------

func newCatalogCmd() *cobra.Command {
	var kind, filter string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the node catalog tree",
		Example: `  nodegraph catalog
  nodegraph catalog --kind node --filter add
  nodegraph catalog --catalog shaders.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(false)
			if err != nil {
				return err
			}
			defer logger.Sync()

			reg, err := loadRegistry(logger)
			if err != nil {
				return err
			}

			kinds := reg.Kinds()
			if kind != "" {
				kinds = []string{kind}
			}
			out := cmd.OutOrStdout()
			for _, k := range kinds {
				printTree(out, k, reg.Filtered(k, filter))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only print this graph kind")
	cmd.Flags().StringVar(&filter, "filter", "", "Only print entries whose name contains this text")
	return cmd
}

func printTree(w io.Writer, kind string, tree *catalog.Entry) {
	header := color.New(color.FgCyan, color.Bold)
	branch := color.New(color.FgYellow)
	leaf := color.New(color.FgGreen)
	token := color.New(color.Faint)

	header.Fprintf(w, "%s\n", kind)
	if tree == nil || len(tree.Children) == 0 {
		token.Fprintln(w, "  (empty)")
		return
	}
	tree.Walk(func(path []string, e *catalog.Entry) {
		if len(path) == 0 {
			return
		}
		indent := strings.Repeat("  ", len(path))
		if !e.IsLeaf() {
			branch.Fprintf(w, "%s%s/\n", indent, e.Segment)
			return
		}
		leaf.Fprintf(w, "%s%s", indent, e.Segment)
		token.Fprintf(w, "  %s\n", e.Type)
	})
}

// Export ----------------------------------------------------------------------

func newExportCmd() *cobra.Command {
	var (
		format string
		output string
		input  string
		check  bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a graph to a diagram format",
		Long: `Export writes a graph in one of the supported diagram formats. The graph is
read from a JSON snapshot given with --input, or is the built-in demo graph.`,
		Example: `  nodegraph export --format mermaid
  nodegraph export --format dot -o graph.dot
  nodegraph export --input graph.json --format d2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			exporter, err := export.NewExporter(f)
			if err != nil {
				return err
			}

			logger, err := newLogger(false)
			if err != nil {
				return err
			}
			defer logger.Sync()

			var snap graph.Snapshot
			if input != "" {
				if snap, err = readSnapshot(input); err != nil {
					return err
				}
			} else {
				reg, err := loadRegistry(logger)
				if err != nil {
					return err
				}
				c, store := newDemoCanvas(logger, reg)
				store.Seed()
				if check {
					if err := reportProblems(cmd.ErrOrStderr(), c.Validate()); err != nil {
						return err
					}
				}
				snap = c.Snapshot()
			}

			out, err := exporter.Export(snap)
			if err != nil {
				return fmt.Errorf("failed to export %s: %w", exporter.GetFormatName(), err)
			}
			if output == "" {
				_, err = io.WriteString(cmd.OutOrStdout(), out)
				return err
			}
			if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			logger.Info("exported", zap.String("format", exporter.GetFormatName()), zap.String("file", output))
			return nil
		},
	}

	var names []string
	for _, f := range export.GetAvailableFormats() {
		names = append(names, string(f))
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatMermaid), "Output format: "+strings.Join(names, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON snapshot to export instead of the demo graph")
	cmd.Flags().BoolVar(&check, "check", false, "Check the canvas for consistency problems before exporting")
	return cmd
}

func readSnapshot(path string) (graph.Snapshot, error) {
	var s graph.Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return s, nil
}

func reportProblems(w io.Writer, problems []graph.ValidationError) error {
	if len(problems) == 0 {
		return nil
	}
	red := color.New(color.FgRed, color.Bold)
	for _, p := range problems {
		red.Fprint(w, "✗ ")
		fmt.Fprintln(w, p.Error())
	}
	return fmt.Errorf("%d consistency problem(s)", len(problems))
}
