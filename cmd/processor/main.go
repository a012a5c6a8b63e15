package main

import (
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	osSignal "os/signal"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ecegroup2/projectweb/internal/analysis"
	"github.com/ecegroup2/projectweb/internal/config"
	"github.com/ecegroup2/projectweb/internal/signal"
	"github.com/ecegroup2/projectweb/internal/stream"
)

type ParamMsg struct {
	Subject string `json:"subject"`
	Ts      int64  `json:"ts"`
	HR      int    `json:"hr"`
}

// processor convierte frames de ecg.wave en mensajes de frecuencia cardíaca.
type processor struct {
	log      *slog.Logger
	detector *analysis.HRDetector
	subject  string
	publish  func(subject string, data []byte) error
}

func (p *processor) handle(data []byte) {
	samples, err := stream.DecodeFrame(data)
	if err != nil {
		p.log.Warn("bad frame", "error", err, "bytes", len(data))
		return
	}

	for _, v := range samples {
		bpm, ok := p.detector.Process(v)
		if !ok {
			continue
		}

		b, _ := json.Marshal(ParamMsg{
			Subject: p.subject,
			Ts:      time.Now().UnixMilli(),
			HR:      bpm,
		})
		if err := p.publish(p.subject, b); err != nil {
			p.log.Warn("publish failed", "subject", p.subject, "error", err)
			continue
		}
		p.log.Info("HR detected", "bpm", bpm)
	}
}

func main() {
	cfg := config.LoadConfig()

	var (
		natsURL   = flag.String("nats", cfg.NATS.URL, "NATS url")
		in        = flag.String("in", cfg.NATS.Subject, "input subject")
		out       = flag.String("out", cfg.NATS.Params, "output subject")
		rate      = flag.Duration("rate", cfg.Display.RefreshRate, "time between samples on the input subject")
		threshold = flag.Float64("threshold", signal.DefaultBaseline+40, "R wave detection threshold")
	)
	flag.Parse()

	logger := config.InitLogger(cfg.App)

	nc, err := stream.Connect(*natsURL, "ecg-processor")
	if err != nil {
		log.Fatal(err)
	}
	defer nc.Drain()

	sampleRate := float64(time.Second) / float64(*rate)

	p := &processor{
		log:      logger,
		detector: analysis.NewHRDetector(*threshold, sampleRate),
		subject:  *out,
		publish:  nc.Publish,
	}

	// la suscripción entrega los mensajes en orden, de a uno
	_, err = nc.Subscribe(*in, func(msg *nats.Msg) { p.handle(msg.Data) })
	if err != nil {
		log.Fatal(err)
	}

	logger.Info("processor running", "in", *in, "out", *out, "sampleRate", sampleRate)

	ch := make(chan os.Signal, 1)
	osSignal.Notify(ch, os.Interrupt)
	<-ch
}
