package stream

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// WaveMessage es el payload JSON publicado por MQTT.
type WaveMessage struct {
	DeviceID  string    `json:"device_id"`
	Timestamp int64     `json:"timestamp"`
	DataType  string    `json:"data_type"`
	Samples   []float64 `json:"samples"`
}

type MQTTOptions struct {
	Broker   string
	Username string
	Password string
	QoS      int
	Topic    string
}

// MQTTPublisher es una Sink que publica lotes en <topic>/<device>/wave.
type MQTTPublisher struct {
	client   mqtt.Client
	topic    string
	qos      byte
	deviceID string
	timeout  time.Duration
}

func ConnectMQTT(opts MQTTOptions, deviceID uuid.UUID) (*MQTTPublisher, error) {
	o := mqtt.NewClientOptions()
	o.AddBroker(opts.Broker)
	o.SetClientID(fmt.Sprintf("ecg-display-%s", deviceID))
	o.SetUsername(opts.Username)
	o.SetPassword(opts.Password)
	o.SetAutoReconnect(true)
	o.SetCleanSession(true)

	client := mqtt.NewClient(o)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", opts.Broker, token.Error())
	}
	return NewMQTTPublisher(client, opts.Topic, opts.QoS, deviceID), nil
}

func NewMQTTPublisher(client mqtt.Client, topic string, qos int, deviceID uuid.UUID) *MQTTPublisher {
	return &MQTTPublisher{
		client:   client,
		topic:    fmt.Sprintf("%s/%s/wave", topic, deviceID),
		qos:      byte(qos),
		deviceID: deviceID.String(),
		timeout:  2 * time.Second,
	}
}

func (p *MQTTPublisher) Publish(samples []float64) error {
	msg := WaveMessage{
		DeviceID:  p.deviceID,
		Timestamp: time.Now().UnixMilli(),
		DataType:  "ecg",
		Samples:   samples,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("mqtt marshal: %w", err)
	}
	token := p.client.Publish(p.topic, p.qos, false, data)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("mqtt publish %s: timeout", p.topic)
	}
	return token.Error()
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
