package stream

import (
	"encoding/binary"
	"errors"
	"math"
	"time"

	"github.com/nats-io/nats.go"
)

var ErrFrameSize = errors.New("frame size is not a multiple of 4")

func Connect(url, name string) (*nats.Conn, error) {
	if name == "" {
		name = "ecg-display"
	}
	return nats.Connect(
		url,
		nats.Name(name),
		nats.Timeout(3*time.Second),
		nats.ReconnectWait(500*time.Millisecond),
		nats.MaxReconnects(-1),
	)
}

// EncodeFrame serializa samples como float32 little endian.
func EncodeFrame(samples []float64) []byte {
	out := make([]byte, 4*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(float32(v)))
	}
	return out
}

func DecodeFrame(b []byte) ([]float64, error) {
	if len(b)%4 != 0 {
		return nil, ErrFrameSize
	}
	out := make([]float64, len(b)/4)
	for i := range out {
		out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])))
	}
	return out, nil
}

// Publisher es una Sink que publica frames binarios en un subject NATS.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

func NewPublisher(nc *nats.Conn, subject string) *Publisher {
	return &Publisher{nc: nc, subject: subject}
}

func (p *Publisher) Publish(samples []float64) error {
	return p.nc.Publish(p.subject, EncodeFrame(samples))
}
