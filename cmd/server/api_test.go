package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ecegroup2/projectweb/internal/anim"
	"github.com/ecegroup2/projectweb/internal/config"
	"github.com/ecegroup2/projectweb/internal/display"
	"github.com/ecegroup2/projectweb/internal/render"
	"github.com/ecegroup2/projectweb/internal/signal"
	"github.com/ecegroup2/projectweb/internal/source"
)

func newTestAPI(t *testing.T) *API {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	host := anim.NewTickerHost(time.Millisecond)
	go host.Run(ctx)

	cfg := config.LoadConfig()
	cfg.Source.APIURL = ""
	cfg.Source.Seed = 1
	cfg.Display.Width = 40
	cfg.Display.Height = 20

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	surface := render.NewGGSurface(cfg.Display.Width, cfg.Display.Height)

	var d *display.Display
	if err := host.Do(ctx, func() {
		d = display.New(cfg, host, display.WithSurface(surface), display.WithLogger(logger))
		d.Load(ctx)
	}); err != nil {
		t.Fatal(err)
	}
	return &API{display: d, host: host, surface: surface, log: logger}
}

func TestECGDataEndpoint(t *testing.T) {
	a := newTestAPI(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ecg-data?pattern=afib&beats=3&seed=9", nil)
	a.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	seq, err := source.Decode(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	min := 3 * (signal.LayoutOf(signal.AtrialFibrillation).Len + 20)
	if seq.Len() < min {
		t.Errorf("samples = %d, want >= %d", seq.Len(), min)
	}
}

func TestECGDataZeroBeatsIsEmpty(t *testing.T) {
	a := newTestAPI(t)
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ecg-data?beats=0", nil))

	if _, err := source.Decode(w.Body); err != source.ErrEmptySource {
		t.Errorf("err = %v, want ErrEmptySource", err)
	}
}

func TestECGDataBadBeats(t *testing.T) {
	a := newTestAPI(t)
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ecg-data?beats=abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestToggleEndpoint(t *testing.T) {
	a := newTestAPI(t)
	r := a.Router()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/display/toggle", nil))
	var st display.Status
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.Running {
		t.Error("toggle left the display running")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/display/reset", nil))
	json.Unmarshal(w.Body.Bytes(), &st)
	if !st.Running {
		t.Error("reset did not restart the display")
	}
}

func TestResizeEndpoint(t *testing.T) {
	a := newTestAPI(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/display/resize", strings.NewReader(`{"width":100,"height":50}`))
	req.Header.Set("Content-Type", "application/json")
	a.Router().ServeHTTP(w, req)

	var st display.Status
	json.Unmarshal(w.Body.Bytes(), &st)
	if w.Code != http.StatusOK || st.Capacity != 50 {
		t.Errorf("status %d, capacity %d", w.Code, st.Capacity)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/display/resize", strings.NewReader(`{"width":0}`))
	req.Header.Set("Content-Type", "application/json")
	a.Router().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid resize status = %d", w.Code)
	}
}

func TestFrameEndpoint(t *testing.T) {
	a := newTestAPI(t)
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/display/frame.png", nil))

	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Errorf("status %d, content type %q", w.Code, w.Header().Get("Content-Type"))
	}
}
