package stream

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	in := []float64{100, 100.5, -30.25, 0}
	b := EncodeFrame(in)
	if len(b) != 16 {
		t.Fatalf("len = %d, want 16", len(b))
	}
	out, err := DecodeFrame(b)
	if err != nil {
		t.Fatal(err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("sample %d = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestDecodeFrameSize(t *testing.T) {
	if _, err := DecodeFrame([]byte{1, 2, 3}); !errors.Is(err, ErrFrameSize) {
		t.Errorf("err = %v", err)
	}
}

type memSink struct {
	batches [][]float64
	err     error
}

func (m *memSink) Publish(s []float64) error {
	m.batches = append(m.batches, append([]float64(nil), s...))
	return m.err
}

func TestTapBatches(t *testing.T) {
	ok := &memSink{}
	bad := &memSink{err: errors.New("down")}
	tap := NewTap(3, slog.New(slog.NewTextHandler(io.Discard, nil)), ok, bad)

	for i := 0; i < 7; i++ {
		tap.Add(float64(i))
	}
	if len(ok.batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(ok.batches))
	}
	tap.Flush()
	if len(ok.batches) != 3 || len(ok.batches[2]) != 1 || ok.batches[2][0] != 6 {
		t.Errorf("batches = %v", ok.batches)
	}
	if tap.Errors() != 3 {
		t.Errorf("Errors = %d, want 3", tap.Errors())
	}
	tap.Flush()
	if len(ok.batches) != 3 {
		t.Error("empty flush published")
	}
}
