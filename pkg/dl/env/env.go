// Package env configures DL tools from environment and command line.
package env

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"

	"github.com/robotalks/dlpacket.go/pkg/dl/comm/hexdump"
	"github.com/robotalks/dlpacket.go/pkg/dl/comm/mqtt"
	"github.com/robotalks/dlpacket.go/pkg/dl/comm/serial"
	"github.com/robotalks/dlpacket.go/pkg/dl/comm/websocket"
	"github.com/robotalks/dlpacket.go/pkg/dl/stats"
)

// Config provides common options to setup sinks.
type Config struct {
	// SinkURL specifies where frames are written, e.g.
	// serial:///dev/ttyUSB0?baud=57600, mqtt://host:1883/prefix,
	// ws://host/path, file:///tmp/frames.bin or - for stdout.
	SinkURL string
	// StatsURL is the MQTT URL stats are published to, empty to disable.
	StatsURL string
	// Interval is the sampling period.
	Interval time.Duration
	// ClientID is the MQTT client ID, derived from machine ID if empty.
	ClientID string

	Stdout io.Writer
}

var defaultConfig = Config{
	SinkURL:  "-",
	Interval: 100 * time.Millisecond,
	Stdout:   os.Stdout,
}

func init() {
	loadEnv(&defaultConfig, os.Getenv)
}

func loadEnv(conf *Config, getenv func(string) string) {
	if val := getenv("DL_SINK_URL"); val != "" {
		conf.SinkURL = val
	}
	if val := getenv("DL_STATS_URL"); val != "" {
		conf.StatsURL = val
	}
	if val := getenv("DL_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			conf.Interval = d
		} else {
			glog.Warningf("invalid DL_INTERVAL %q ignored", val)
		}
	}
	if val := getenv("DL_CLIENT_ID"); val != "" {
		conf.ClientID = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.SinkURL, "sink", defaultConfig.SinkURL, "Frame sink URL (serial://, mqtt://, ws://, file:// or -).")
	flag.StringVar(&defaultConfig.StatsURL, "stats", defaultConfig.StatsURL, "MQTT URL for publishing stats.")
	flag.DurationVar(&defaultConfig.Interval, "interval", defaultConfig.Interval, "Sampling interval.")
	flag.StringVar(&defaultConfig.ClientID, "client-id", defaultConfig.ClientID, "MQTT client ID.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// MachineClientID derives a stable MQTT client ID from the machine ID.
func MachineClientID() string {
	id, err := machineid.ProtectedID("dlpacket")
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		return ""
	}
	return "dl-" + id[:12]
}

func (c *Config) clientID() string {
	if c.ClientID != "" {
		return c.ClientID
	}
	return MachineClientID()
}

// UnknownSchemeError indicates a URL scheme no sink supports.
type UnknownSchemeError string

func (e UnknownSchemeError) Error() string {
	return fmt.Sprintf("unknown sink URL scheme: %q", string(e))
}

type nopCloser struct {
	*hexdump.Writer
}

func (nopCloser) Close() error { return nil }

type mqttSink struct {
	*mqtt.Writer
}

func (s mqttSink) Close() error { return s.Queue.Close() }

// NewSink opens the frame sink specified by SinkURL.
func (c *Config) NewSink() (io.WriteCloser, error) {
	if c.SinkURL == "" || c.SinkURL == "-" {
		out := c.Stdout
		if out == nil {
			out = os.Stdout
		}
		return nopCloser{hexdump.New(out)}, nil
	}
	u, err := url.Parse(c.SinkURL)
	if err != nil {
		return nil, fmt.Errorf("invalid sink URL: %v", err)
	}
	switch u.Scheme {
	case "serial":
		return serial.OpenURL(u)
	case "file":
		return os.OpenFile(u.Path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	case "ws", "wss":
		return websocket.Dial(c.SinkURL)
	case "mqtt", "mqtts":
		q, err := c.connectQueue(c.SinkURL)
		if err != nil {
			return nil, err
		}
		return mqttSink{mqtt.NewWriter(q, mqtt.FramesTopic)}, nil
	default:
		return nil, UnknownSchemeError(u.Scheme)
	}
}

// MustNewSink creates the sink and fails on error.
func (c *Config) MustNewSink() io.WriteCloser {
	sink, err := c.NewSink()
	if err != nil {
		log.Fatalln(err)
	}
	return sink
}

// NewStatsReporter creates a Reporter publishing counters to StatsURL.
// It returns nil if StatsURL is empty.
func (c *Config) NewStatsReporter(counters *stats.Counters) (*stats.Reporter, io.Closer, error) {
	if c.StatsURL == "" {
		return nil, nil, nil
	}
	q, err := c.connectQueue(c.StatsURL)
	if err != nil {
		return nil, nil, err
	}
	w := &mqtt.Writer{Queue: q, Topic: mqtt.StatsTopic, Retain: true}
	return stats.NewReporter(counters, w), q, nil
}

// NewQueue connects to an MQTT broker.
func (c *Config) NewQueue(brokerURL string) (*mqtt.Queue, error) {
	return c.connectQueue(brokerURL)
}

func (c *Config) connectQueue(brokerURL string) (*mqtt.Queue, error) {
	q, err := mqtt.NewQueueFromURL(brokerURL, c.clientID())
	if err != nil {
		return nil, err
	}
	if err = q.Connect(); err != nil {
		return nil, err
	}
	return q, nil
}
