// Package mqtt publishes classification results to an MQTT broker.
//
// Outcomes go to <host>/outcome and the run summary to <host>/summary,
// each payload a msgs.Typed envelope.
package mqtt

import (
	"flag"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/robotalks/patchlink/pkg/classify"
	"github.com/robotalks/patchlink/pkg/env"
	fx "github.com/robotalks/patchlink/pkg/framework"
	"github.com/robotalks/patchlink/pkg/report"
	"github.com/robotalks/patchlink/pkg/report/msgs"
)

// Topic suffixes.
const (
	TopicOutcome = "outcome"
	TopicSummary = "summary"
)

// Config defines the broker to publish to.
type Config struct {
	// URL is like mqtt://host:1883/prefix/, empty disables publishing.
	URL string
	// Timeout bounds each publish.
	Timeout time.Duration
}

var (
	defaultConfig = Config{
		Timeout: time.Second,
	}
)

func init() {
	if val := env.Getenv("PATCHLINK_MQTT_URL"); val != "" {
		defaultConfig.URL = val
	}
}

// SetupFlags sets up flags for default config.
func SetupFlags() {
	flag.StringVar(&defaultConfig.URL, "mqtt", defaultConfig.URL, "MQTT broker URL to publish outcomes.")
}

// Default returns the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config from default values.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Publisher publishes outcomes as they are recorded.
type Publisher struct {
	Queue   *Queue
	Host    string
	Labels  report.Labels
	Timeout time.Duration
}

// Dial connects to the configured broker.
func Dial(cfg *Config, host string, labels report.Labels) (*Publisher, error) {
	q, err := NewQueueFromURL(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "mqtt")
	}
	if err := q.Connect(); err != nil {
		return nil, errors.Wrapf(err, "mqtt connect %s", cfg.URL)
	}
	return &Publisher{Queue: q, Host: host, Labels: labels, Timeout: cfg.Timeout}, nil
}

// Topic returns the topic for suffix under this host.
func (p *Publisher) Topic(suffix string) string {
	return p.Host + "/" + suffix
}

func (p *Publisher) publish(suffix string, msg fx.Message) error {
	payload, err := msgs.Encode(msg)
	if err != nil {
		return err
	}
	token := p.Queue.Pub(p.Topic(suffix), payload)
	if p.Timeout > 0 && !token.WaitTimeout(p.Timeout) {
		return errors.Errorf("publish %s: timeout", p.Topic(suffix))
	}
	return token.Error()
}

// HandleOutcome implements classify.OutcomeHandler. Publish failures are
// logged and never stop a run.
func (p *Publisher) HandleOutcome(o classify.Outcome) {
	msg := msgs.NewPatchOutcome(p.Host, o, report.Describe(o, p.Labels))
	if err := p.publish(TopicOutcome, msg); err != nil {
		glog.Warningf("patch %d: %v", o.Index, err)
	}
}

// PublishSummary publishes the result of a run.
func (p *Publisher) PublishSummary(image string, outcomes []classify.Outcome, total int, runErr error) error {
	c := report.Count(outcomes)
	msg := &msgs.RunSummary{
		Host:       p.Host,
		Image:      image,
		Total:      uint32(total),
		Completed:  uint32(len(outcomes)),
		Success:    uint32(c.Success),
		OutOfRange: uint32(c.OutOfRange),
		Absent:     uint32(c.Absent),
		Malformed:  uint32(c.Malformed),
	}
	if runErr != nil {
		msg.Error = runErr.Error()
	}
	return p.publish(TopicSummary, msg)
}

// Close disconnects from the broker.
func (p *Publisher) Close() error {
	return p.Queue.Close()
}
