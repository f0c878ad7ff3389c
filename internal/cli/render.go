package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/laneviz/laneviz/pkg/errors"
	"github.com/laneviz/laneviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	vizType    string   // visualization type: "lane" or "graph"
	formats    []string // output formats: svg, png, pdf, json, dot
	scale      float64  // raster scale for PNG output
	noEdges    bool     // omit edges from the swimlane view
	noLabels   bool     // omit edge labels from the swimlane view
	background string   // canvas background color
	noCache    bool     // bypass the artifact cache
	watch      bool     // re-render when the input file changes
	config     string   // explicit config file path
}

// newRenderCmd creates the render command for generating diagram outputs.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram to SVG, PNG, PDF, JSON, or DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.config)
			if err != nil {
				return err
			}
			applyRenderConfig(&opts, &formatsStr, cfg.Render)
			opts.formats = parseFormats(formatsStr)

			if err := pipeline.ValidateVizType(opts.vizType); err != nil {
				return err
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}

			if opts.watch {
				return watchRender(cmd.Context(), args[0], &opts)
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", "", "visualization type: lane (default), graph")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "raster scale factor for PNG output")
	cmd.Flags().BoolVar(&opts.noEdges, "no-edges", false, "omit edges from the lane view")
	cmd.Flags().BoolVar(&opts.noLabels, "no-edge-labels", false, "omit edge labels from the lane view")
	cmd.Flags().StringVar(&opts.background, "background", "", "canvas background color (e.g. #ffffff)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the input file changes")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file path")

	return cmd
}

// applyRenderConfig fills unset flags from the config file.
func applyRenderConfig(opts *renderOpts, formatsStr *string, cfg RenderConfig) {
	if opts.vizType == "" {
		opts.vizType = cfg.VizType
	}
	if opts.vizType == "" {
		opts.vizType = pipeline.DefaultVizType
	}
	if *formatsStr == "" && len(cfg.Formats) > 0 {
		*formatsStr = cfg.Formats[0]
		for _, f := range cfg.Formats[1:] {
			*formatsStr += "," + f
		}
	}
	if opts.scale == 0 {
		opts.scale = cfg.Scale
	}
	if opts.background == "" {
		opts.background = cfg.Background
	}
}

// runRender reads the input, runs the pipeline, and writes each artifact.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	source, err := readSource(input)
	if err != nil {
		return err
	}

	runner := newRunner(opts.noCache, logger)
	defer runner.Close()

	// PNG/PDF shell out to external tools, so show a spinner while waiting.
	var spinner *Spinner
	for _, f := range opts.formats {
		if f == pipeline.FormatPNG || f == pipeline.FormatPDF {
			spinner = newSpinnerWithContext(ctx, "Rendering "+input)
			spinner.Start()
			break
		}
	}

	tracker := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Source:       source,
		VizType:      opts.vizType,
		Formats:      opts.formats,
		Scale:        opts.scale,
		NoEdges:      opts.noEdges,
		NoEdgeLabels: opts.noLabels,
		Background:   opts.background,
		NoCache:      opts.noCache,
		Logger:       logger,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	tracker.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	printStats(result.Stats.LaneCount, result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)

	if len(opts.formats) == 1 {
		path := opts.output
		if path == "" {
			path = basePath("", input) + "." + opts.formats[0]
		}
		if err := writeArtifact(path, result.Artifacts[opts.formats[0]]); err != nil {
			return err
		}
		printFile(path)
		return nil
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// watchRender renders once, then re-renders whenever the input changes.
func watchRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	if input == "-" {
		return fmt.Errorf("--watch requires a file path, not stdin")
	}

	if err := runRender(ctx, input, opts); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save, which
	// drops a watch registered on the file itself.
	dir := filepath.Dir(input)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	printInfo("Watching %s (ctrl-c to stop)", input)

	target := filepath.Clean(input)
	var debounce *time.Timer
	rerender := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, func() {
				select {
				case rerender <- struct{}{}:
				default:
				}
			})
		case <-rerender:
			if err := runRender(ctx, input, opts); err != nil {
				printError("%v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}

// readSource reads the diagram source from a file, or stdin when path is "-".
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	return string(data), nil
}

// writeArtifact writes data to path, creating parent directories as needed.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
