package render

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/ecegroup2/projectweb/internal/window"
)

type op struct {
	name string
	x, y float64
}

type recorder struct {
	w, h    int
	ops     []op
	join    LineJoin
	caption string
}

func (r *recorder) Width() int { return r.w }
func (r *recorder) Height() int { return r.h }
func (r *recorder) SetFillColor(string) {}
func (r *recorder) FillRect(x, y, w, h float64) { r.ops = append(r.ops, op{"fill", w, h}) }
func (r *recorder) BeginPath() { r.ops = append(r.ops, op{name: "begin"}) }
func (r *recorder) MoveTo(x, y float64) { r.ops = append(r.ops, op{"move", x, y}) }
func (r *recorder) LineTo(x, y float64) { r.ops = append(r.ops, op{"line", x, y}) }
func (r *recorder) Stroke() { r.ops = append(r.ops, op{name: "stroke"}) }
func (r *recorder) SetStrokeColor(string) {}
func (r *recorder) SetLineWidth(float64) {}
func (r *recorder) SetLineJoin(j LineJoin) { r.join = j }
func (r *recorder) Caption(text, color string) { r.caption = text }

func TestProjectMonotonicSpansPaddedHeight(t *testing.T) {
	const width, height, advance = 200, 100, 2.0
	capacity := window.Capacity(width, advance)
	w := window.New(capacity)
	for i := 0; i < capacity; i++ {
		w.Push(float64(i))
	}

	pts := Project(w.Values(), height, advance)
	if len(pts) != capacity {
		t.Fatalf("len = %d, want %d", len(pts), capacity)
	}

	pad := height * Padding
	first, last := pts[0], pts[len(pts)-1]
	if math.Abs(first.Y-(height-pad)) > 1e-9 {
		t.Errorf("min maps to y=%v, want %v", first.Y, height-pad)
	}
	if math.Abs(last.Y-pad) > 1e-9 {
		t.Errorf("max maps to y=%v, want %v", last.Y, pad)
	}
	if last.X != float64(capacity-1)*advance {
		t.Errorf("last x = %v", last.X)
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].Y >= pts[i-1].Y {
			t.Fatalf("y not decreasing at %d", i)
		}
	}
}

func TestProjectFlat(t *testing.T) {
	pts := Project([]float64{5, 5, 5}, 80, 1)
	for _, p := range pts {
		if p.Y != 40 {
			t.Fatalf("flat y = %v, want 40", p.Y)
		}
	}
	if Project(nil, 80, 1) != nil {
		t.Error("empty input returned points")
	}
}

func TestDrawEmptyIsNoop(t *testing.T) {
	r := NewRenderer(Style{GridSize: 25})
	s := &recorder{w: 100, h: 50}
	r.Draw(s, nil, "x")
	if len(s.ops) != 0 {
		t.Errorf("ops = %v", s.ops)
	}
}

func TestDraw(t *testing.T) {
	r := NewRenderer(Style{GridSize: 25, Advance: 2})
	s := &recorder{w: 100, h: 50}
	r.Draw(s, []float64{1, 2, 3}, "advisory")

	if s.ops[0].name != "fill" || s.ops[0].x != 100 || s.ops[0].y != 50 {
		t.Errorf("first op = %+v, want full fill", s.ops[0])
	}

	// 4 verticales + 2 horizontales, cada una begin/move/line/stroke
	grid := 6 * 4
	trace := s.ops[1+grid:]
	if len(trace) != 5 {
		t.Fatalf("trace ops = %v", trace)
	}
	if trace[1].name != "move" || trace[2].name != "line" || trace[4].name != "stroke" {
		t.Errorf("trace ops = %v", trace)
	}
	if s.join != JoinRound {
		t.Error("trace not drawn with round joins")
	}
	if s.caption != "advisory" {
		t.Errorf("caption = %q", s.caption)
	}
}

func TestGGSurfacePNG(t *testing.T) {
	s := NewGGSurface(120, 60)
	r := NewRenderer(Style{
		LineColor:       "#00A651",
		LineWidth:       2,
		BackgroundColor: "#000000",
		GridColor:       "#004000",
		GridSize:        25,
		Advance:         2,
	})
	r.Draw(s, []float64{100, 120, 90, 100}, "")

	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 60 {
		t.Errorf("bounds = %v", b)
	}

	s.Resize(0, 30)
	if s.Width() != 1 || s.Height() != 30 {
		t.Errorf("size after resize = %dx%d", s.Width(), s.Height())
	}
}
