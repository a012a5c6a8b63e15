package render

import (
	"image"
	"io"
	"log"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce sync.Once
	ttf      *truetype.Font
)

func captionFace(size float64) font.Face {
	fontOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			log.Printf("render: parsing caption font: %v", err)
			return
		}
		ttf = f
	})
	if ttf == nil {
		return nil
	}
	return truetype.NewFace(ttf, &truetype.Options{Size: size})
}

// GGSurface implementa TextSurface sobre un gg.Context.
type GGSurface struct {
	dc *gg.Context
}

func NewGGSurface(width, height int) *GGSurface {
	return &GGSurface{dc: gg.NewContext(clamp(width), clamp(height))}
}

func clamp(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// Resize reemplaza el contexto; el contenido previo se pierde.
func (s *GGSurface) Resize(width, height int) {
	s.dc = gg.NewContext(clamp(width), clamp(height))
}

func (s *GGSurface) Width() int  { return s.dc.Width() }
func (s *GGSurface) Height() int { return s.dc.Height() }

func (s *GGSurface) SetFillColor(color string) { s.dc.SetHexColor(color) }

func (s *GGSurface) FillRect(x, y, w, h float64) {
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Fill()
}

func (s *GGSurface) BeginPath() { s.dc.NewSubPath() }

func (s *GGSurface) MoveTo(x, y float64) { s.dc.MoveTo(x, y) }

func (s *GGSurface) LineTo(x, y float64) { s.dc.LineTo(x, y) }

func (s *GGSurface) Stroke() { s.dc.Stroke() }

func (s *GGSurface) SetStrokeColor(color string) { s.dc.SetHexColor(color) }

func (s *GGSurface) SetLineWidth(w float64) { s.dc.SetLineWidth(w) }

func (s *GGSurface) SetLineJoin(j LineJoin) {
	switch j {
	case JoinRound:
		s.dc.SetLineJoin(gg.LineJoinRound)
	default:
		// gg no tiene miter
		s.dc.SetLineJoin(gg.LineJoinBevel)
	}
}

func (s *GGSurface) Caption(text, color string) {
	if face := captionFace(14); face != nil {
		s.dc.SetFontFace(face)
	}
	s.dc.SetHexColor(color)
	s.dc.DrawStringAnchored(text, float64(s.dc.Width())/2, 20, 0.5, 0.5)
}

func (s *GGSurface) Image() image.Image { return s.dc.Image() }

func (s *GGSurface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }
