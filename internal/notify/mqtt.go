// Package notify publishes advisory reports to an MQTT broker.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"solar_advisor/internal/logger"
	"solar_advisor/internal/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	publishQoS      = 1
	publishTimeout  = 5 * time.Second
	disconnectQuiet = 250 // ms
)

// Config configures the broker connection and the publication filter.
type Config struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	Topic       string // may contain {severity}
	MinSeverity models.Severity
}

// Message is the payload published for each qualifying report.
type Message struct {
	Reading models.Reading        `json:"reading"`
	Report  models.AdvisoryReport `json:"report"`
}

// Publisher sends reports whose highest severity reaches MinSeverity.
type Publisher struct {
	client      mqtt.Client
	topic       string
	minSeverity models.Severity
	log         *logger.Logger
}

// Dial connects to the broker.
func Dial(cfg Config, log *logger.Logger) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetOnConnectHandler(func(mqtt.Client) {
		if log != nil {
			log.Infow("mqtt_connected", "broker", cfg.Broker)
		}
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		if log != nil {
			log.Warnw("mqtt_connection_lost", "broker", cfg.Broker, "err", err)
		}
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", cfg.Broker, token.Error())
	}
	return NewPublisher(client, cfg, log), nil
}

// NewPublisher wraps an already connected client.
func NewPublisher(client mqtt.Client, cfg Config, log *logger.Logger) *Publisher {
	return &Publisher{client: client, topic: cfg.Topic, minSeverity: cfg.MinSeverity, log: log}
}

// ShouldPublish reports whether the report's highest severity reaches the threshold.
func (p *Publisher) ShouldPublish(rep models.AdvisoryReport) bool {
	top := rep.HighestSeverity()
	return top.Rank() > 0 && top.Rank() >= p.minSeverity.Rank()
}

// Publish sends the report if it qualifies. Non-qualifying reports are a no-op.
func (p *Publisher) Publish(ctx context.Context, r models.Reading, rep models.AdvisoryReport) error {
	if !p.ShouldPublish(rep) {
		return nil
	}
	payload, err := json.Marshal(Message{Reading: r, Report: rep})
	if err != nil {
		return fmt.Errorf("marshal advisory message: %w", err)
	}

	topic := FormatTopic(p.topic, rep.HighestSeverity())
	token := p.client.Publish(topic, publishQoS, false, payload)

	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return fmt.Errorf("publish to %s: timed out after %s", topic, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	if p.log != nil {
		p.log.Debugw("mqtt_published", "topic", topic, "prediction_id", rep.PredictionID)
	}
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(disconnectQuiet)
}

// FormatTopic replaces the {severity} placeholder.
func FormatTopic(pattern string, s models.Severity) string {
	return strings.ReplaceAll(pattern, "{severity}", string(s))
}
