package main

import (
	"context"
	"flag"
	"log"
	"os"
	osSignal "os/signal"

	"github.com/ecegroup2/projectweb/internal/anim"
	"github.com/ecegroup2/projectweb/internal/config"
	"github.com/ecegroup2/projectweb/internal/display"
	"github.com/ecegroup2/projectweb/internal/stream"
)

func main() {
	cfg := config.LoadConfig()

	var (
		natsURL = flag.String("nats", cfg.NATS.URL, "NATS url")
		subject = flag.String("subject", cfg.NATS.Subject, "subject")
		batch   = flag.Int("batch", cfg.NATS.Batch, "samples per message")
		mqttURL = flag.String("mqtt", cfg.MQTT.Broker, "MQTT broker (optional)")
		apiURL  = flag.String("api", cfg.Source.APIURL, "remote ecgValues endpoint (empty = synthetic)")
		pattern = flag.String("pattern", cfg.Source.Pattern, "synthetic rhythm pattern")
		rate    = flag.Duration("rate", cfg.Display.RefreshRate, "time between samples")
	)
	flag.Parse()

	cfg.Source.APIURL = *apiURL
	cfg.Source.Pattern = *pattern
	cfg.Display.RefreshRate = *rate

	logger := config.InitLogger(cfg.App)

	nc, err := stream.Connect(*natsURL, "ecg-producer")
	if err != nil {
		log.Fatal(err)
	}
	defer nc.Drain()

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	osSignal.Notify(ch, os.Interrupt)

	go func() {
		<-ch
		cancel()
	}()

	host := anim.NewTickerHost(cfg.Display.RefreshRate)

	var d *display.Display
	var tap *stream.Tap
	var mq *stream.MQTTPublisher

	// el display se crea en el goroutine del host
	host.Post(func() {
		d = display.New(cfg, host, display.WithLogger(logger))

		sinks := []stream.Sink{stream.NewPublisher(nc, *subject)}
		if *mqttURL != "" {
			opts := stream.MQTTOptions{
				Broker:   *mqttURL,
				Username: cfg.MQTT.Username,
				Password: cfg.MQTT.Password,
				QoS:      cfg.MQTT.QoS,
				Topic:    cfg.MQTT.Topic,
			}
			mq, err = stream.ConnectMQTT(opts, d.ID())
			if err != nil {
				logger.Error("mqtt disabled", "error", err)
			} else {
				sinks = append(sinks, mq)
			}
		}
		tap = stream.NewTap(*batch, logger, sinks...)

		d.OnFrame(func(f display.Frame) { tap.Add(f.Sample) })
		d.Fetch(ctx)
	})

	logger.Info("producer running", "subject", *subject, "rate", cfg.Display.RefreshRate.String())
	host.Run(ctx)

	// Run ya terminó: nada más corre en el host
	if d != nil {
		d.Close()
		tap.Flush()
	}
	if mq != nil {
		mq.Close()
	}
	log.Println("producer: stopping")
}
