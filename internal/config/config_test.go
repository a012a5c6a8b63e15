package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	d := cfg.Display
	if d.LineColor != "#00A651" || d.LineWidth != 2 || d.BackgroundColor != "#000000" ||
		d.GridColor != "#004000" || d.AnimationSpeed != 2 || d.GridSize != 25 ||
		d.RefreshRate != 20*time.Millisecond {
		t.Errorf("unexpected display defaults: %+v", d)
	}
	if cfg.Source.Pattern != "normal" || cfg.Source.Beats != 50 {
		t.Errorf("unexpected source defaults: %+v", cfg.Source)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("ECG_ANIMATION_SPEED", "3.5")
	t.Setenv("ECG_REFRESH_RATE", "40")
	t.Setenv("ECG_GRID_SIZE", "bad")
	t.Setenv("ECG_API_URL", "http://localhost:9000/ecg")
	t.Setenv("ECG_API_TIMEOUT", "2s")

	cfg := LoadConfig()
	if cfg.Display.AnimationSpeed != 3.5 {
		t.Errorf("AnimationSpeed = %v", cfg.Display.AnimationSpeed)
	}
	if cfg.Display.RefreshRate != 40*time.Millisecond {
		t.Errorf("RefreshRate = %v", cfg.Display.RefreshRate)
	}
	if cfg.Display.GridSize != 25 {
		t.Errorf("GridSize = %v, want default on bad input", cfg.Display.GridSize)
	}
	if cfg.Source.APIURL != "http://localhost:9000/ecg" || cfg.Source.Timeout != 2*time.Second {
		t.Errorf("source = %+v", cfg.Source)
	}
}

func TestInitLogger(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	logger := NewLogger(&buf, AppConfig{LogLevel: "warn", Env: "production"})
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output %q: %v", buf.String(), err)
	}
	if line["msg"] != "shown" {
		t.Errorf("msg = %v", line["msg"])
	}
}
