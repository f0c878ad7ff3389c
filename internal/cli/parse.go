package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/laneviz/laneviz/pkg/layout"
	"github.com/laneviz/laneviz/pkg/model"
	"github.com/laneviz/laneviz/pkg/parser"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	output  string // output file path; stdout if empty
	summary bool   // print a lane/node summary instead of JSON
}

// newParseCmd creates the parse command that turns notation into the
// layout document.
func newParseCmd() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse diagram notation and emit the layout document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print a lane/node summary instead of JSON")

	return cmd
}

func runParse(ctx context.Context, input string, opts *parseOpts) error {
	logger := loggerFromContext(ctx)

	source, err := readSource(input)
	if err != nil {
		return err
	}

	tracker := newProgress(logger)
	d := parser.Parse(source)
	l := layout.Build(d)
	doc := model.FromDiagram(d, l.Width, l.Height)
	tracker.done(fmt.Sprintf("Parsed %d nodes", d.NodeCount()))

	if opts.summary {
		printSummary(d, l)
		return nil
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := model.WriteDocument(doc, out); err != nil {
		return err
	}
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}

// printSummary prints lanes, their nodes, and the canvas size.
func printSummary(d *model.Diagram, l layout.Layout) {
	fmt.Println(StyleTitle.Render("Diagram"))
	printStats(d.LaneCount(), d.NodeCount(), d.EdgeCount(), false)
	printDetail("canvas %.0f×%.0f", l.Width, l.Height)

	for _, lane := range d.Lanes() {
		fmt.Println()
		fmt.Println(StyleValue.Render(lane.Label) + " " + StyleDim.Render(fmt.Sprintf("(%s, %s)", lane.ID, lane.Category)))
		for _, n := range lane.Nodes {
			printDetail("%s %s", n.ID, firstLine(n.Label))
		}
	}

	free := d.FreeNodes()
	if len(free) > 0 {
		fmt.Println()
		fmt.Println(StyleValue.Render("(no lane)"))
		for _, n := range free {
			printDetail("%s %s", n.ID, firstLine(n.Label))
		}
	}
}

// firstLine returns the text up to the first newline.
func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
