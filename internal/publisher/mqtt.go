// Package publisher pushes computed statistics to an MQTT broker as
// retained per-metric topics, the shape Home Assistant template sensors
// subscribe to.
package publisher

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/jameshanlon/home-energy-data/internal/config"
	"github.com/jameshanlon/home-energy-data/pkg/models"
)

// Publisher handles publishing to the MQTT broker
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
}

// New connects to the configured broker
func New(cfg config.MQTTConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("MQTT publishing is not enabled in config")
	}
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required when enabled")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID("home-energy-data")
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return &Publisher{
		client:      client,
		topicPrefix: cfg.GetTopicPrefix(),
	}, nil
}

// PublishStats publishes every metric of the document's statistics under
// <prefix>/total/... and <prefix>/annual/<year>/..., plus the combined
// stats JSON under <prefix>/summary. Returns the number of topics written.
func (p *Publisher) PublishStats(doc *models.Document) (int, error) {
	count, err := p.publishStats("total", doc.TotalStats)
	if err != nil {
		return count, err
	}
	for _, s := range doc.AnnualStats {
		n, err := p.publishStats(fmt.Sprintf("annual/%d", s.Year), s)
		count += n
		if err != nil {
			return count, err
		}
	}

	summary := struct {
		AnnualStats []models.Stats `json:"annual_stats"`
		TotalStats  models.Stats   `json:"total_stats"`
	}{doc.AnnualStats, doc.TotalStats}
	payload, err := json.Marshal(summary)
	if err != nil {
		return count, fmt.Errorf("encoding summary: %w", err)
	}
	if err := p.publish(p.topicPrefix+"/summary", string(payload)); err != nil {
		return count, err
	}
	return count + 1, nil
}

// publishStats writes one scope ("total" or "annual/<year>"). An SCOP
// that is undefined for the period gets no topic at all.
func (p *Publisher) publishStats(scope string, s models.Stats) (int, error) {
	count := 0

	energies := []struct {
		name  string
		value float64
	}{
		{"heating_consumed", s.HeatingConsumed},
		{"water_consumed", s.WaterConsumed},
		{"total_consumed", s.TotalConsumed},
		{"heating_generated", s.HeatingGenerated},
		{"water_generated", s.WaterGenerated},
		{"total_generated", s.TotalGenerated},
	}
	for _, m := range energies {
		topic := fmt.Sprintf("%s/%s/%s", p.topicPrefix, scope, m.name)
		if err := p.publish(topic, fmt.Sprintf("%.2f", m.value)); err != nil {
			return count, err
		}
		count++
	}

	scops := []struct {
		name  string
		value *float64
	}{
		{"heating_scop", s.HeatingSCOP},
		{"water_scop", s.WaterSCOP},
		{"scop", s.SCOP},
	}
	for _, m := range scops {
		if m.value == nil {
			continue
		}
		topic := fmt.Sprintf("%s/%s/%s", p.topicPrefix, scope, m.name)
		if err := p.publish(topic, fmt.Sprintf("%.2f", *m.value)); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func (p *Publisher) publish(topic, payload string) error {
	token := p.client.Publish(topic, 0, true, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publishing %s: %w", topic, token.Error())
	}
	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
