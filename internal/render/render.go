package render

import "math"

type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// Surface es la superficie de dibujo (tamaño en píxeles de dispositivo).
type Surface interface {
	Width() int
	Height() int
	SetFillColor(color string)
	FillRect(x, y, w, h float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
	SetStrokeColor(color string)
	SetLineWidth(w float64)
	SetLineJoin(j LineJoin)
}

// TextSurface es una Surface que además puede escribir el texto de estado.
type TextSurface interface {
	Surface
	Caption(text, color string)
}

// Padding es la fracción del alto reservada arriba y abajo del trazo.
const Padding = 0.1

type Point struct {
	X, Y float64
}

// Project normaliza values entre min y max al alto de la superficie.
// Con rango nulo el trazo queda en el centro vertical.
func Project(values []float64, height int, advance float64) []Point {
	if len(values) == 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	h := float64(height)
	pad := h * Padding
	span := hi - lo

	pts := make([]Point, len(values))
	for i, v := range values {
		y := h / 2
		if span > 0 {
			y = h - pad - (v-lo)*(h-2*pad)/span
		}
		pts[i] = Point{X: float64(i) * advance, Y: y}
	}
	return pts
}

type Style struct {
	LineColor       string
	LineWidth       float64
	BackgroundColor string
	GridColor       string
	GridSize        float64
	Advance         float64
	CaptionColor    string
}

// Renderer dibuja el fondo, la grilla y el trazo de la ventana.
type Renderer struct {
	style Style
}

func NewRenderer(style Style) *Renderer {
	if style.Advance <= 0 {
		style.Advance = 2
	}
	if style.CaptionColor == "" {
		style.CaptionColor = "#FFFFFF"
	}
	return &Renderer{style: style}
}

// Draw no hace nada con values vacío.
func (r *Renderer) Draw(s Surface, values []float64, caption string) {
	if len(values) == 0 {
		return
	}

	w, h := float64(s.Width()), float64(s.Height())

	s.SetFillColor(r.style.BackgroundColor)
	s.FillRect(0, 0, w, h)

	r.drawGrid(s, w, h)

	s.BeginPath()
	s.SetStrokeColor(r.style.LineColor)
	s.SetLineWidth(r.style.LineWidth)
	s.SetLineJoin(JoinRound)
	for i, p := range Project(values, s.Height(), r.style.Advance) {
		if i == 0 {
			s.MoveTo(p.X, p.Y)
		} else {
			s.LineTo(p.X, p.Y)
		}
	}
	s.Stroke()

	if ts, ok := s.(TextSurface); ok && caption != "" {
		ts.Caption(caption, r.style.CaptionColor)
	}
}

func (r *Renderer) drawGrid(s Surface, w, h float64) {
	if r.style.GridSize <= 0 {
		return
	}
	s.SetStrokeColor(r.style.GridColor)
	s.SetLineWidth(0.5)

	for x := 0.0; x < w; x += r.style.GridSize {
		s.BeginPath()
		s.MoveTo(x, 0)
		s.LineTo(x, h)
		s.Stroke()
	}
	for y := 0.0; y < h; y += r.style.GridSize {
		s.BeginPath()
		s.MoveTo(0, y)
		s.LineTo(w, y)
		s.Stroke()
	}
}
