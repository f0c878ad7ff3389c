package nodelink

import (
	"strings"
	"testing"

	"github.com/laneviz/laneviz/pkg/parser"
)

const sampleSrc = `
subgraph ui["Presentation"]
login["Login<br>Form"]
end
auth["Auth Service"]
login --> |submit| auth
`

func TestToDOT_Basic(t *testing.T) {
	d := parser.Parse(sampleSrc)
	dot := ToDOT(d)

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"login"`) {
		t.Error("ToDOT() output missing node login")
	}
	if !strings.Contains(dot, `"login" -> "auth"`) {
		t.Error("ToDOT() output missing edge")
	}
	if !strings.Contains(dot, `label="submit"`) {
		t.Error("ToDOT() output missing edge label")
	}
}

func TestToDOT_LaneBecomesCluster(t *testing.T) {
	d := parser.Parse(sampleSrc)
	dot := ToDOT(d)

	if !strings.Contains(dot, "subgraph cluster_0") {
		t.Error("ToDOT() lane should become a cluster subgraph")
	}
	if !strings.Contains(dot, `label="Presentation"`) {
		t.Error("ToDOT() cluster missing lane label")
	}
}

func TestToDOT_FreeNodeAtTopLevel(t *testing.T) {
	d := parser.Parse(sampleSrc)
	dot := ToDOT(d)

	// The free node must appear after the cluster block, not inside it.
	authPos := strings.Index(dot, `"auth" [`)
	if authPos == -1 {
		t.Fatal("ToDOT() missing free node declaration")
	}
	clusterClose := strings.Index(dot, "  }")
	if clusterClose == -1 {
		t.Fatal("ToDOT() missing cluster close")
	}
	if authPos < clusterClose {
		t.Error("free node declared inside a lane cluster")
	}
}

func TestToDOT_MultilineLabel(t *testing.T) {
	d := parser.Parse(sampleSrc)
	dot := ToDOT(d)

	// %q turns the embedded newline into \n, which DOT renders as a break.
	if !strings.Contains(dot, `label="Login\nForm"`) {
		t.Error("ToDOT() should carry the normalized line break into DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00">`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("normalized tag = %s", out)
	}
	if !strings.Contains(out, `width="100"`) {
		t.Errorf("normalized width missing: %s", out)
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	in := []byte(`<svg>no viewbox here</svg>`)
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("input without viewBox should pass through, got %s", got)
	}
}
