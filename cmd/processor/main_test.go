package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/ecegroup2/projectweb/internal/analysis"
	"github.com/ecegroup2/projectweb/internal/signal"
	"github.com/ecegroup2/projectweb/internal/stream"
)

func TestProcessorPublishesHeartRate(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)
	var global bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&global, nil)))

	var logs bytes.Buffer
	var published []ParamMsg
	p := &processor{
		log:      slog.New(slog.NewJSONHandler(&logs, nil)),
		detector: analysis.NewHRDetector(signal.DefaultBaseline+40, 120),
		subject:  "ecg.params",
		publish: func(subject string, data []byte) error {
			var m ParamMsg
			if err := json.Unmarshal(data, &m); err != nil {
				t.Fatal(err)
			}
			published = append(published, m)
			return nil
		},
	}

	synth := signal.NewSynthesizer(signal.DefaultBaseline, signal.Silent)
	p.handle(stream.EncodeFrame(synth.Rhythm(4, signal.Normal)))
	p.handle([]byte{1, 2, 3})

	if len(published) != 3 {
		t.Fatalf("published = %+v, want 3 messages", published)
	}
	for _, m := range published {
		if m.HR != 60 || m.Subject != "ecg.params" {
			t.Errorf("message = %+v", m)
		}
	}

	if n := strings.Count(logs.String(), `"msg":"HR detected"`); n != 3 {
		t.Errorf("HR log lines = %d, want 3\n%s", n, logs.String())
	}
	if !strings.Contains(logs.String(), `"msg":"bad frame"`) {
		t.Error("bad frame not logged")
	}
	if global.Len() != 0 {
		t.Errorf("default logger used: %s", global.String())
	}
}
