package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/robotalks/dlpacket.go/pkg/dl/comm/hexdump"
	"github.com/robotalks/dlpacket.go/pkg/dl/comm/mqtt"
	"github.com/robotalks/dlpacket.go/pkg/dl/env"
	"github.com/robotalks/dlpacket.go/pkg/dl/packet"
	"github.com/robotalks/dlpacket.go/pkg/dl/stats"
)

var (
	mqttURL = "mqtt://localhost:1883/dl/"
)

func init() {
	if val := os.Getenv("DL_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := env.NewConfig().NewQueue(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	defer q.Close()

	q.Sub("#", mqtt.Handler(func(topic string, payload []byte) {
		switch {
		case strings.HasSuffix(topic, mqtt.StatsTopic):
			counters, err := stats.Decode(payload)
			if err != nil {
				log.Printf("%s: bad stats: %v", topic, err)
				return
			}
			log.Printf("%s: %s", topic, counters.String())
		default:
			frame := packet.Frame(payload)
			if !frame.Valid() {
				log.Printf("%s: INVALID %s", topic, hexdump.Format(payload))
				return
			}
			m := frame.Manifest()
			log.Printf("%s: [%d analog %d digital] %s", topic,
				m.Analog(), m.Digital(), hexdump.Format(payload))
		}
	}))
	<-(chan struct{})(nil)
}
