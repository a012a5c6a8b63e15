package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	osSignal "os/signal"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ecegroup2/projectweb/internal/anim"
	"github.com/ecegroup2/projectweb/internal/config"
	"github.com/ecegroup2/projectweb/internal/display"
	"github.com/ecegroup2/projectweb/internal/render"
	"github.com/ecegroup2/projectweb/internal/stream"
)

func main() {
	cfg := config.LoadConfig()

	var (
		addr    = flag.String("addr", cfg.App.HTTPAddr, "http address")
		apiURL  = flag.String("api", cfg.Source.APIURL, "remote ecgValues endpoint (empty = synthetic)")
		pattern = flag.String("pattern", cfg.Source.Pattern, "synthetic rhythm pattern")
		width   = flag.Int("width", cfg.Display.Width, "surface width in pixels")
		height  = flag.Int("height", cfg.Display.Height, "surface height in pixels")
		natsURL = flag.String("nats", cfg.NATS.URL, "NATS url for heart rate relay (empty = off)")
		params  = flag.String("params", cfg.NATS.Params, "heart rate subject relayed to websocket clients")
	)
	flag.Parse()

	cfg.App.HTTPAddr = *addr
	cfg.Source.APIURL = *apiURL
	cfg.Source.Pattern = *pattern
	cfg.Display.Width = *width
	cfg.Display.Height = *height

	logger := config.InitLogger(cfg.App)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	host := anim.NewTickerHost(cfg.Display.RefreshRate)
	go host.Run(ctx)

	hub := newHub()
	surface := render.NewGGSurface(cfg.Display.Width, cfg.Display.Height)

	var d *display.Display
	err := host.Do(ctx, func() {
		d = display.New(cfg, host,
			display.WithSurface(surface),
			display.WithLogger(logger),
			display.WithFrameHook(hub.onFrame),
		)
		d.Fetch(ctx)
	})
	if err != nil {
		log.Fatal(err)
	}
	go hub.run(ctx)

	if *natsURL != "" {
		nc, err := stream.Connect(*natsURL, "ecg-server")
		if err != nil {
			logger.Warn("nats unavailable, heart rate relay off", "url", *natsURL, "error", err)
		} else {
			defer nc.Drain()
			if _, err := nc.Subscribe(*params, func(msg *nats.Msg) { hub.onParams(msg.Data) }); err != nil {
				logger.Warn("subscribe failed", "subject", *params, "error", err)
			}
		}
	}

	api := &API{display: d, host: host, surface: surface, hub: hub, log: logger}
	server := &http.Server{Addr: cfg.App.HTTPAddr, Handler: api.Router()}

	go func() {
		logger.Info("server running", "addr", cfg.App.HTTPAddr, "display", d.ID().String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	ch := make(chan os.Signal, 1)
	osSignal.Notify(ch, os.Interrupt)
	<-ch

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()

	_ = host.Do(shutdownCtx, d.Close)
	server.Shutdown(shutdownCtx)
	cancel()
	logger.Info("server stopped")
}
