// internal/publisher/mqtt.go
// Publish ringkasan produksi terakhir per sumur ke broker MQTT (retained)

package publisher

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"well-dashboard/internal/services"
)

var ErrNotConfigured = errors.New("publisher: MQTT broker is not configured")

type Options struct {
	Broker      string // host:port
	Username    string
	Password    string
	TopicPrefix string
	ClientID    string
	Timeout     time.Duration
}

// tokenPublisher bagian dari mqtt.Client yang dipakai Publisher.
type tokenPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

type Publisher struct {
	client  tokenPublisher
	closer  func()
	prefix  string
	timeout time.Duration
}

// New membuka koneksi ke broker. Panggil Close setelah selesai.
func New(o Options) (*Publisher, error) {
	if o.Broker == "" {
		return nil, ErrNotConfigured
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", o.Broker))
	opts.SetClientID(o.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(o.Timeout)
	if o.Username != "" {
		opts.SetUsername(o.Username)
	}
	if o.Password != "" {
		opts.SetPassword(o.Password)
	}

	client := mqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(o.Timeout) {
		return nil, fmt.Errorf("connecting to MQTT broker %s: timeout", o.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("connecting to MQTT broker %s: %w", o.Broker, err)
	}

	p := newPublisher(client, o.TopicPrefix, o.Timeout)
	p.closer = func() {
		if client.IsConnected() {
			client.Disconnect(250)
		}
	}
	return p, nil
}

func newPublisher(c tokenPublisher, prefix string, timeout time.Duration) *Publisher {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = "well_production"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Publisher{client: c, prefix: prefix, timeout: timeout}
}

// Summary nilai terakhir tiap deret. Field nil jika deret kosong.
type Summary struct {
	Well    string   `json:"well"`
	Month   string   `json:"month,omitempty"` // YYYY-MM titik terakhir yang ada
	Months  int      `json:"months"`
	OilRate *float64 `json:"oil_rate"`
	WatRate *float64 `json:"wat_rate"`
	OilCum  *float64 `json:"oil_cum"`
	WatCum  *float64 `json:"wat_cum"`
}

func Summarize(well string, p services.ProductionSeries) Summary {
	s := Summary{Well: well}
	var latest time.Time
	for _, f := range []struct {
		series services.Series
		dst    **float64
	}{
		{p.OilRate, &s.OilRate},
		{p.WaterRate, &s.WatRate},
		{p.OilCum, &s.OilCum},
		{p.WaterCum, &s.WatCum},
	} {
		if len(f.series) > s.Months {
			s.Months = len(f.series)
		}
		if len(f.series) == 0 {
			continue
		}
		last := f.series[len(f.series)-1]
		v := last.Value
		*f.dst = &v
		if last.Date.After(latest) {
			latest = last.Date
		}
	}
	if !latest.IsZero() {
		s.Month = latest.Format("2006-01")
	}
	return s
}

// Topic {prefix}/{well}/state; karakter wildcard/pemisah MQTT di nama sumur diganti "_".
func (p *Publisher) Topic(well string) string {
	r := strings.NewReplacer("/", "_", "+", "_", "#", "_")
	return p.prefix + "/" + r.Replace(well) + "/state"
}

// Publish mengirim Summary sebagai JSON, QoS 1, retained.
func (p *Publisher) Publish(s Summary) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}
	tok := p.client.Publish(p.Topic(s.Well), 1, true, body)
	if !tok.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish %s: timeout", s.Well)
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", s.Well, err)
	}
	return nil
}

// Close memutus koneksi broker.
func (p *Publisher) Close() {
	if p.closer != nil {
		p.closer()
	}
}
