package cli

import (
	"reflect"
	"testing"

	"github.com/laneviz/laneviz/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{"json,dot,pdf", []string{"json", "dot", "pdf"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestApplyRenderConfig(t *testing.T) {
	opts := renderOpts{}
	formatsStr := ""
	applyRenderConfig(&opts, &formatsStr, RenderConfig{
		VizType:    "graph",
		Formats:    []string{"svg", "png"},
		Scale:      3,
		Background: "#ffffff",
	})

	if opts.vizType != "graph" {
		t.Errorf("vizType = %q, want graph", opts.vizType)
	}
	if formatsStr != "svg,png" {
		t.Errorf("formatsStr = %q, want svg,png", formatsStr)
	}
	if opts.scale != 3 {
		t.Errorf("scale = %v, want 3", opts.scale)
	}
	if opts.background != "#ffffff" {
		t.Errorf("background = %q", opts.background)
	}
}

func TestApplyRenderConfigFlagsWin(t *testing.T) {
	opts := renderOpts{vizType: "lane", scale: 1.5, background: "#000000"}
	formatsStr := "pdf"
	applyRenderConfig(&opts, &formatsStr, RenderConfig{
		VizType:    "graph",
		Formats:    []string{"svg"},
		Scale:      3,
		Background: "#ffffff",
	})

	if opts.vizType != "lane" || formatsStr != "pdf" || opts.scale != 1.5 || opts.background != "#000000" {
		t.Errorf("flags should take precedence over config: %+v formats=%q", opts, formatsStr)
	}
}

func TestApplyRenderConfigDefaults(t *testing.T) {
	opts := renderOpts{}
	formatsStr := ""
	applyRenderConfig(&opts, &formatsStr, RenderConfig{})

	if opts.vizType != pipeline.DefaultVizType {
		t.Errorf("vizType = %q, want %q", opts.vizType, pipeline.DefaultVizType)
	}
}
