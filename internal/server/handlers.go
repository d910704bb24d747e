package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/regiongen/pkg/buildinfo"
	"github.com/matzehuels/regiongen/pkg/errors"
	"github.com/matzehuels/regiongen/pkg/history"
	"github.com/matzehuels/regiongen/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// generateResponse is the body of a successful POST /v1/generate.
type generateResponse struct {
	ID          string            `json:"id,omitempty"`
	Hash        string            `json:"hash"`
	Cached      bool              `json:"cached"`
	Regions     int               `json:"regions"`
	Clusters    int               `json:"clusters"`
	SpinePoints int               `json:"spine_points"`
	DurationMS  int64             `json:"duration_ms"`
	Artifacts   map[string][]byte `json:"artifacts"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{Density: pipeline.DefaultDensity}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidArgument, "decode options: %v", err))
		return
	}
	opts.Logger = s.logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := generateResponse{
		Hash:        result.Hash,
		Cached:      result.CacheInfo.RenderHit,
		Regions:     result.Stats.RegionCount,
		Clusters:    result.Stats.ClusterCount,
		SpinePoints: result.Stats.SpinePoints,
		DurationMS:  result.Stats.Total().Milliseconds(),
		Artifacts:   result.Artifacts,
	}
	if rec := s.record(r, opts, result); rec != nil {
		resp.ID = rec.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRenderPNG(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{pipeline.FormatPNG}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.record(r, opts, result)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("ETag", strconv.Quote(result.Hash))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[pipeline.FormatPNG])
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "run history is disabled"))
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidArgument, "invalid limit %q", v))
			return
		}
		limit = n
	}

	recs, err := s.history.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []*history.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "run history is disabled"))
		return
	}
	rec, err := s.history.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// record saves the run to history. Failures are logged, not returned: the
// artifacts were produced either way.
func (s *Server) record(r *http.Request, opts pipeline.Options, result *pipeline.Result) *history.Record {
	if s.history == nil {
		return nil
	}
	rec := history.NewRecord(opts, result)
	for format := range result.Artifacts {
		rec.Artifacts = append(rec.Artifacts, format)
	}
	if err := s.history.Save(r.Context(), rec); err != nil {
		s.logger.Warn("save run failed", "error", err)
		return nil
	}
	return rec
}

// optionsFromQuery builds options from URL query parameters. Absent
// parameters keep their defaults.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{Density: pipeline.DefaultDensity}

	ints := []struct {
		name string
		dst  *int
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"density", &opts.Density},
		{"cluster_min", &opts.ClusterMin},
		{"cluster_max", &opts.ClusterMax},
		{"spine_density", &opts.SpineDensity},
		{"marker_radius", &opts.MarkerRadius},
		{"scale", &opts.Scale},
	}
	for _, p := range ints {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidArgument, "invalid %s %q", p.name, v)
		}
		*p.dst = n
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"clusters", &opts.Clusters},
		{"solid_spine", &opts.SolidSpine},
		{"spine_lines", &opts.SpineLines},
		{"markers", &opts.Markers},
	}
	for _, p := range bools {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidArgument, "invalid %s %q", p.name, v)
		}
		*p.dst = b
	}

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidArgument, "invalid seed %q", v)
		}
		opts.Seed = seed
	}
	opts.Mode = q.Get("mode")
	return opts, nil
}
