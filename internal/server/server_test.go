package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/regiongen/pkg/errors"
	"github.com/matzehuels/regiongen/pkg/history"
	"github.com/matzehuels/regiongen/pkg/pipeline"
)

func newTestServer(t *testing.T, withHistory bool) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(nil, nil, logger)

	var store history.Store
	if withHistory {
		fs, err := history.NewFileStore(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		store = fs
	}

	ts := httptest.NewServer(New(runner, store, logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Error("response should carry a request id")
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestRequestIDEchoed(t *testing.T) {
	ts := newTestServer(t, false)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(requestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestGenerate(t *testing.T) {
	ts := newTestServer(t, true)

	body := `{"width": 32, "height": 24, "density": 6, "mode": "cluster", "formats": ["png", "json"]}`
	resp, err := http.Post(ts.URL+"/v1/generate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out generateResponse
	decodeBody(t, resp, &out)
	if out.Regions != 6 {
		t.Errorf("regions = %d, want 6", out.Regions)
	}
	if out.ID == "" {
		t.Error("run should be recorded")
	}
	if len(out.Artifacts) != 2 {
		t.Fatalf("artifacts = %d, want 2", len(out.Artifacts))
	}
	img, err := png.Decode(bytes.NewReader(out.Artifacts["png"]))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("png size = %dx%d, want 32x24", b.Dx(), b.Dy())
	}

	// The recorded run is listed and retrievable.
	resp, err = http.Get(ts.URL + "/v1/runs")
	if err != nil {
		t.Fatal(err)
	}
	var runs []history.Record
	decodeBody(t, resp, &runs)
	if len(runs) != 1 || runs[0].ID != out.ID {
		t.Fatalf("runs = %+v, want the generated run", runs)
	}

	resp, err = http.Get(ts.URL + "/v1/runs/" + out.ID)
	if err != nil {
		t.Fatal(err)
	}
	var rec history.Record
	decodeBody(t, resp, &rec)
	if rec.Options.Width != 32 || rec.Options.Mode != "cluster" {
		t.Errorf("recorded options = %+v", rec.Options)
	}
}

func TestGenerateErrors(t *testing.T) {
	ts := newTestServer(t, false)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   errors.Code
	}{
		{"malformed", `{"width": `, http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"unknown field", `{"colour": 1}`, http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"negative density", `{"density": -1}`, http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"bad mode", `{"mode": "rainbow"}`, http.StatusBadRequest, errors.ErrCodeInvalidMode},
		{"no regions", `{"width": 8, "height": 8, "density": 0}`, http.StatusUnprocessableEntity, errors.ErrCodePrecondition},
		{"too large", `{"width": 100000, "height": 100000}`, http.StatusRequestEntityTooLarge, errors.ErrCodeResourceExhausted},
		{"too many regions", `{"width": 4, "height": 4, "density": 1125899906842624}`, http.StatusRequestEntityTooLarge, errors.ErrCodeResourceExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/generate", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var out errorResponse
			decodeBody(t, resp, &out)
			if out.Code != string(tt.wantCode) {
				t.Errorf("code = %q, want %q (%s)", out.Code, tt.wantCode, out.Error)
			}
		})
	}
}

func TestRenderPNG(t *testing.T) {
	ts := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/v1/render.png?width=20&height=10&density=3&seed=5&scale=2&markers=true")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("png size = %dx%d, want 40x20", b.Dx(), b.Dy())
	}
}

func TestRenderPNGBadQuery(t *testing.T) {
	ts := newTestServer(t, false)

	for _, q := range []string{"width=abc", "markers=maybe", "seed=-1"} {
		resp, err := http.Get(ts.URL + "/v1/render.png?" + q)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestRuns(t *testing.T) {
	ts := newTestServer(t, true)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/v1/runs", http.StatusOK},
		{"/v1/runs?limit=x", http.StatusBadRequest},
		{"/v1/runs/not-a-uuid", http.StatusBadRequest},
		{"/v1/runs/6ba7b810-9dad-11d1-80b4-00c04fd430c8", http.StatusNotFound},
	}
	for _, tt := range tests {
		resp, err := http.Get(ts.URL + tt.path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.wantStatus {
			t.Errorf("GET %s status = %d, want %d", tt.path, resp.StatusCode, tt.wantStatus)
		}
	}
}

func TestRunsDisabled(t *testing.T) {
	ts := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/v1/runs")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidArgument, http.StatusBadRequest},
		{errors.ErrCodeInvalidConfig, http.StatusBadRequest},
		{errors.ErrCodePrecondition, http.StatusUnprocessableEntity},
		{errors.ErrCodeResourceExhausted, http.StatusRequestEntityTooLarge},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(errors.New(tt.code, "x")); got != tt.want {
			t.Errorf("statusFor(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
