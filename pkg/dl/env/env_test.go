package env

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/dlpacket.go/pkg/dl/comm"
	"github.com/robotalks/dlpacket.go/pkg/dl/packet"
	"github.com/robotalks/dlpacket.go/pkg/dl/stats"
)

func TestLoadEnv(t *testing.T) {
	vars := map[string]string{
		"DL_SINK_URL":  "serial:///dev/ttyUSB0",
		"DL_STATS_URL": "mqtt://localhost:1883/dl",
		"DL_INTERVAL":  "20ms",
		"DL_CLIENT_ID": "dl-test",
	}
	conf := Config{SinkURL: "-", Interval: time.Second}
	loadEnv(&conf, func(key string) string { return vars[key] })
	require.Equal(t, "serial:///dev/ttyUSB0", conf.SinkURL)
	require.Equal(t, "mqtt://localhost:1883/dl", conf.StatsURL)
	require.Equal(t, 20*time.Millisecond, conf.Interval)
	require.Equal(t, "dl-test", conf.clientID())

	conf = Config{Interval: time.Second}
	loadEnv(&conf, func(key string) string {
		if key == "DL_INTERVAL" {
			return "soon"
		}
		return ""
	})
	require.Equal(t, time.Second, conf.Interval)
}

func TestNewConfigCopies(t *testing.T) {
	conf := NewConfig()
	conf.SinkURL = "file:///dev/null"
	require.NotEqual(t, conf.SinkURL, Default().SinkURL)
}

func TestNewSinkStdout(t *testing.T) {
	var out bytes.Buffer
	conf := &Config{SinkURL: "-", Stdout: &out}
	sink, err := conf.NewSink()
	require.NoError(t, err)
	_, ok := sink.(comm.PacketWriter)
	require.True(t, ok)

	b := packet.NewBuilder(sink)
	b.AddDigitalValue(true)
	require.True(t, b.Send())
	require.NoError(t, b.Err())
	require.Equal(t, "64 6c 00 01 09\n", out.String())
	require.NoError(t, sink.Close())
}

func TestNewSinkFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "frames.bin")
	conf := &Config{SinkURL: "file://" + fn}
	sink, err := conf.NewSink()
	require.NoError(t, err)
	b := packet.NewBuilder(sink)
	b.AddAnalogValue(1000)
	b.AddDigitalValue(true)
	require.True(t, b.Send())
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(fn)
	require.NoError(t, err)
	require.True(t, packet.Frame(data).Valid())
	require.Equal(t, 3, packet.Frame(data).Manifest().Total())
}

func TestNewSinkErrors(t *testing.T) {
	_, err := (&Config{SinkURL: "gopher://host"}).NewSink()
	require.Equal(t, UnknownSchemeError("gopher"), err)
	require.Contains(t, err.Error(), "gopher")

	_, err = (&Config{SinkURL: "serial://"}).NewSink()
	require.Error(t, err)

	_, err = (&Config{SinkURL: "%zz"}).NewSink()
	require.Error(t, err)
}

func TestNewStatsReporterDisabled(t *testing.T) {
	r, closer, err := (&Config{}).NewStatsReporter(&stats.Counters{})
	require.NoError(t, err)
	require.Nil(t, r)
	require.Nil(t, closer)
}
