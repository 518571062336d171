package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	mzerrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/pipeline"
	"github.com/matzehuels/mazegen/pkg/store"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	maxBodyBytes     = 1 << 16
)

var contentTypes = map[string]string{
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerate renders a freshly generated (or cached) maze in one format.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts, err := optionsFromQuery(q)
	if err != nil {
		writeError(w, err)
		return
	}
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatText
	}
	opts.Formats = []string{format}
	opts.MaxDimension = s.cfg.MaxDimension

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("X-Maze-Seed", strconv.FormatUint(res.Seed, 10))
	w.Header().Set("X-Maze-Algorithm", res.Maze.Algorithm().String())
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.MazeHit))
	writeArtifact(w, http.StatusOK, format, res.Artifacts[format])
}

// createRequest is the body of POST /v1/mazes.
type createRequest struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Algorithm string `json:"algorithm"`
	Seed      uint64 `json:"seed"`
}

// handleCreate generates a maze and stores it in the archive.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, mzerrors.Wrap(mzerrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Width:        req.Width,
		Height:       req.Height,
		Algorithm:    req.Algorithm,
		Seed:         req.Seed,
		Formats:      []string{pipeline.FormatJSON},
		MaxDimension: s.cfg.MaxDimension,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	rec := res.Snapshot
	if err := s.store.Save(r.Context(), rec); err != nil {
		writeError(w, mzerrors.Wrap(mzerrors.ErrCodeInternal, err, "archive maze"))
		return
	}
	s.logger.Info("archived maze", "id", rec.ID, "algorithm", rec.Algorithm, "seed", rec.Seed)

	w.Header().Set("Location", "/v1/mazes/"+rec.ID.String())
	writeJSON(w, http.StatusCreated, rec)
}

// handleList returns archived mazes, newest first.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, mzerrors.New(mzerrors.ErrCodeInvalidInput, "limit must be a positive integer, got %q", v))
			return
		}
		limit = min(n, maxListLimit)
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, mzerrors.Wrap(mzerrors.ErrCodeInternal, err, "list mazes"))
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"mazes": recs})
}

// handleGet returns an archived maze as JSON or renders it.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mzerrors.New(mzerrors.ErrCodeInvalidInput, "invalid maze id %q", chi.URLParam(r, "id")))
		return
	}
	rec, err := s.store.ByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, mzerrors.New(mzerrors.ErrCodeMazeNotFound, "maze %s not found", id))
		return
	}
	if err != nil {
		writeError(w, mzerrors.Wrap(mzerrors.ErrCodeInternal, err, "load maze"))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == pipeline.FormatJSON {
		writeJSON(w, http.StatusOK, rec)
		return
	}

	m, err := rec.Maze()
	if err != nil {
		writeError(w, mzerrors.FromMaze(err))
		return
	}
	opts := pipeline.Options{
		Width:     rec.Width,
		Height:    rec.Height,
		Algorithm: rec.Algorithm.String(),
		Seed:      rec.Seed,
		Formats:   []string{format},
		Style:     r.URL.Query().Get("style"),
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}
	artifacts, err := pipeline.Render(r.Context(), m, rec, opts)
	if err != nil {
		writeError(w, mzerrors.Wrap(mzerrors.ErrCodeInternal, err, "render maze"))
		return
	}
	writeArtifact(w, http.StatusOK, format, artifacts[format])
}

// optionsFromQuery reads generation options from query parameters.
// Missing parameters are left zero for the pipeline defaults.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	var opts pipeline.Options
	var err error
	if opts.Width, err = intParam(q, "width"); err != nil {
		return opts, err
	}
	if opts.Height, err = intParam(q, "height"); err != nil {
		return opts, err
	}
	if v := q.Get("seed"); v != "" {
		if opts.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return opts, mzerrors.New(mzerrors.ErrCodeInvalidInput, "seed must be an unsigned integer, got %q", v)
		}
	}
	opts.Algorithm = q.Get("algorithm")
	opts.Style = q.Get("style")
	return opts, nil
}

func intParam(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, mzerrors.New(mzerrors.ErrCodeInvalidDimensions, "%s must be a positive integer, got %q", name, v)
	}
	return n, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
