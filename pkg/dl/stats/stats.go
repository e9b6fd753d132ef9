// Package stats counts what a sampler sends and reports it.
package stats

import (
	"github.com/golang/glog"
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/dlpacket.go/pkg/dl/comm"
	fx "github.com/robotalks/dlpacket.go/pkg/framework"
)

// Counters is the stats message, serialized with protobuf.
type Counters struct {
	Frames     uint64 `protobuf:"varint,1,opt,name=frames,proto3" json:"frames,omitempty"`
	Bytes      uint64 `protobuf:"varint,2,opt,name=bytes,proto3" json:"bytes,omitempty"`
	Readings   uint64 `protobuf:"varint,3,opt,name=readings,proto3" json:"readings,omitempty"`
	Splits     uint64 `protobuf:"varint,4,opt,name=splits,proto3" json:"splits,omitempty"`
	Dropped    uint64 `protobuf:"varint,5,opt,name=dropped,proto3" json:"dropped,omitempty"`
	SinkErrors uint64 `protobuf:"varint,6,opt,name=sink_errors,proto3" json:"sink_errors,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Counters) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Counters) Reset() { *m = Counters{} }

// String implements proto.Message.
func (m *Counters) String() string { return proto.CompactTextString(m) }

// Encode serializes the counters.
func (m *Counters) Encode() ([]byte, error) {
	return proto.Marshal(m)
}

// Decode parses serialized counters.
func Decode(data []byte) (*Counters, error) {
	var m Counters
	if err := proto.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Reporter publishes Counters whenever they change.
type Reporter struct {
	Counters *Counters
	Writer   comm.PacketWriter

	last    Counters
	started bool
}

// NewReporter creates a Reporter.
func NewReporter(counters *Counters, w comm.PacketWriter) *Reporter {
	return &Reporter{Counters: counters, Writer: w}
}

// AddToLoop implements LoopAdder.
func (r *Reporter) AddToLoop(l *fx.Loop) {
	l.AddController(fx.PrLvReport, r)
}

// Control implements Controller.
func (r *Reporter) Control(fx.ControlContext) error {
	if r.started && *r.Counters == r.last {
		return nil
	}
	data, err := r.Counters.Encode()
	if err != nil {
		return err
	}
	if err = r.Writer.WritePacket(data); err != nil {
		return err
	}
	glog.V(2).Infof("stats %s", r.Counters.String())
	r.last, r.started = *r.Counters, true
	return nil
}
