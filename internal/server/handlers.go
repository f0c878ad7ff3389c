package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/laneviz/laneviz/pkg/errors"
	"github.com/laneviz/laneviz/pkg/model"
	"github.com/laneviz/laneviz/pkg/pipeline"
	"github.com/laneviz/laneviz/pkg/store"
)

// renderResponse is the POST /v1/render response body.
// Artifact bytes are base64-encoded by encoding/json.
type renderResponse struct {
	ID         string            `json:"id,omitempty"`
	SourceHash string            `json:"source_hash"`
	Document   model.Document    `json:"document"`
	Artifacts  map[string][]byte `json:"artifacts"`
	Stats      renderStats       `json:"stats"`
	CacheHit   bool              `json:"cache_hit"`
}

type renderStats struct {
	Lanes  int    `json:"lanes"`
	Nodes  int    `json:"nodes"`
	Edges  int    `json:"edges"`
	Parse  string `json:"parse_time"`
	Layout string `json:"layout_time"`
	Render string `json:"render_time"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err))
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := renderResponse{
		SourceHash: result.SourceHash,
		Document:   result.Document,
		Artifacts:  result.Artifacts,
		Stats: renderStats{
			Lanes:  result.Stats.LaneCount,
			Nodes:  result.Stats.NodeCount,
			Edges:  result.Stats.EdgeCount,
			Parse:  result.Stats.ParseTime.String(),
			Layout: result.Stats.LayoutTime.String(),
			Render: result.Stats.RenderTime.String(),
		},
		CacheHit: result.CacheInfo.RenderHit,
	}

	if s.store != nil {
		rec := store.NewRender(opts.Source, &resp.Document)
		rec.SVG = result.Artifacts[pipeline.FormatSVG]
		if err := s.store.Save(r.Context(), rec); err != nil {
			s.logger.Warn("failed to persist render", "err", err)
		} else {
			resp.ID = rec.ID
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRenders(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "render history is disabled"))
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", v))
			return
		}
		limit = n
	}

	renders, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"renders": renders})
}

func (s *Server) handleGetRender(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "render history is disabled"))
		return
	}

	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidVizType, errors.ErrCodeInvalidConfig,
		errors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeStoreUnavailable:
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}
