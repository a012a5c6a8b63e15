package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ecegroup2/projectweb/internal/anim"
	"github.com/ecegroup2/projectweb/internal/display"
	"github.com/ecegroup2/projectweb/internal/render"
	"github.com/ecegroup2/projectweb/internal/signal"
	"github.com/ecegroup2/projectweb/internal/source"
)

const maxBeats = 500

// API expone el endpoint ecgValues y los controles del display.
type API struct {
	display *display.Display
	host    *anim.TickerHost
	surface *render.GGSurface
	hub     *Hub
	log     *slog.Logger
}

type ResizeRequest struct {
	Width  int `json:"width" binding:"required,min=1"`
	Height int `json:"height" binding:"required,min=1"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (a *API) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	api := r.Group("/api")
	{
		api.GET("/ecg-data", a.ecgData)
		api.GET("/patterns", a.patterns)

		d := api.Group("/display")
		d.GET("", a.status)
		d.POST("/fetch", a.fetch)
		d.POST("/toggle", a.control(func(d *display.Display) { d.Toggle() }))
		d.POST("/start", a.control(func(d *display.Display) { d.Start() }))
		d.POST("/stop", a.control(func(d *display.Display) { d.Stop() }))
		d.POST("/reset", a.control(func(d *display.Display) { d.Reset() }))
		d.POST("/resize", a.resize)
		d.GET("/frame.png", a.frame)
	}

	if a.hub != nil {
		r.GET("/ws", func(c *gin.Context) { a.hub.serve(c.Writer, c.Request) })
	}
	r.GET("/metrics", a.metrics)

	return r
}

// ecgData genera datos sintéticos nuevos en cada request.
func (a *API) ecgData(c *gin.Context) {
	pattern := signal.ParsePattern(c.DefaultQuery("pattern", string(signal.Normal)))

	beats := pattern.Preset()
	if v := c.Query("beats"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxBeats {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("beats must be between 0 and %d", maxBeats)})
			return
		}
		beats = n
	}

	seed := time.Now().UnixNano()
	if v := c.Query("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid seed"})
			return
		}
		seed = n
	}

	synth := signal.NewSynthesizer(signal.DefaultBaseline, signal.NewNoise(rand.New(rand.NewSource(seed))))
	c.JSON(http.StatusOK, source.Payload{ECGValues: synth.Rhythm(beats, pattern)})
}

func (a *API) patterns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"patterns": signal.Patterns()})
}

func (a *API) do(c *gin.Context, fn func()) bool {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := a.host.Do(ctx, fn); err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

func (a *API) status(c *gin.Context) {
	var st display.Status
	if a.do(c, func() { st = a.display.Status() }) {
		c.JSON(http.StatusOK, st)
	}
}

func (a *API) control(fn func(*display.Display)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var st display.Status
		if a.do(c, func() {
			fn(a.display)
			st = a.display.Status()
		}) {
			c.JSON(http.StatusOK, st)
		}
	}
}

func (a *API) fetch(c *gin.Context) {
	if a.do(c, func() { a.display.Fetch(context.Background()) }) {
		a.log.Info("fetch requested")
		c.JSON(http.StatusAccepted, gin.H{"status": "fetching"})
	}
}

func (a *API) resize(c *gin.Context) {
	var req ResizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	var st display.Status
	if a.do(c, func() {
		a.display.Resize(req.Width, req.Height)
		st = a.display.Status()
	}) {
		c.JSON(http.StatusOK, st)
	}
}

func (a *API) frame(c *gin.Context) {
	var buf bytes.Buffer
	var err error
	if !a.do(c, func() { err = a.surface.EncodePNG(&buf) }) {
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (a *API) metrics(c *gin.Context) {
	var st display.Status
	if !a.do(c, func() { st = a.display.Status() }) {
		return
	}
	var sent, dropped int64
	if a.hub != nil {
		sent, dropped = a.hub.sent.Load(), a.hub.dropped.Load()
	}
	c.String(http.StatusOK, "ticks %d\nwindow %d\ncapacity %d\nws_messages %d\nws_dropped %d\n",
		st.Ticks, st.Length, st.Capacity, sent, dropped)
}
