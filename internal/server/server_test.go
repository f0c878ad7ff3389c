package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/laneviz/laneviz/pkg/cache"
	"github.com/laneviz/laneviz/pkg/pipeline"
	"github.com/laneviz/laneviz/pkg/store"
)

const sampleSource = `subgraph frontend
  ui[Web UI]
end
subgraph backend
  api[API Server]
end
ui -->|calls| api
`

func newTestServer(t *testing.T, st store.Store) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	srv := New(Config{}, runner, st, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postRender(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/render", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/render: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRenderSVG(t *testing.T) {
	ts := newTestServer(t, nil)

	body, _ := json.Marshal(map[string]any{
		"source":  sampleSource,
		"formats": []string{"svg"},
	})
	resp := postRender(t, ts, string(body))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		SourceHash string            `json:"source_hash"`
		Artifacts  map[string][]byte `json:"artifacts"`
		Stats      struct {
			Lanes int `json:"lanes"`
			Nodes int `json:"nodes"`
			Edges int `json:"edges"`
		} `json:"stats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if out.SourceHash == "" {
		t.Error("source_hash should be set")
	}
	if out.Stats.Lanes != 2 || out.Stats.Nodes != 2 || out.Stats.Edges != 1 {
		t.Errorf("stats = %+v", out.Stats)
	}
	if !bytes.Contains(out.Artifacts["svg"], []byte("<svg")) {
		t.Error("svg artifact should contain an <svg> element")
	}
}

func TestRenderInvalidBody(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := postRender(t, ts, "{not json")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRenderMissingSource(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := postRender(t, ts, `{"formats":["svg"]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var out struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if out.Code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", out.Code)
	}
}

func TestRenderInvalidVizType(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := postRender(t, ts, `{"source":"A[One]","viz_type":"tower"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRenderHistory(t *testing.T) {
	st := store.NewMemoryStore()
	ts := newTestServer(t, st)

	body, _ := json.Marshal(map[string]any{"source": sampleSource})
	resp := postRender(t, ts, string(body))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var rendered struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rendered); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rendered.ID == "" {
		t.Fatal("render should be assigned an ID when a store is configured")
	}

	// List
	listResp, err := http.Get(ts.URL + "/v1/renders")
	if err != nil {
		t.Fatalf("GET /v1/renders: %v", err)
	}
	defer listResp.Body.Close()
	var listed struct {
		Renders []struct {
			ID string `json:"id"`
		} `json:"renders"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Renders) != 1 || listed.Renders[0].ID != rendered.ID {
		t.Errorf("renders = %+v", listed.Renders)
	}

	// Get by ID
	getResp, err := http.Get(ts.URL + "/v1/renders/" + rendered.ID)
	if err != nil {
		t.Fatalf("GET /v1/renders/{id}: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", getResp.StatusCode)
	}

	// Unknown ID
	missResp, err := http.Get(ts.URL + "/v1/renders/nope")
	if err != nil {
		t.Fatalf("GET missing render: %v", err)
	}
	defer missResp.Body.Close()
	if missResp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", missResp.StatusCode)
	}
}

func TestRenderHistoryDisabled(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/v1/renders")
	if err != nil {
		t.Fatalf("GET /v1/renders: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestListRendersInvalidLimit(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore())

	resp, err := http.Get(ts.URL + "/v1/renders?limit=abc")
	if err != nil {
		t.Fatalf("GET /v1/renders: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
