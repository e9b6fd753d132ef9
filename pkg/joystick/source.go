// Package joystick samples a joystick as DL readings.
package joystick

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/dlpacket.go/pkg/dl/sampler"
	fx "github.com/robotalks/dlpacket.go/pkg/framework"
	"github.com/robotalks/dlpacket.go/pkg/joystick/device"
)

// DetectInterval is the period between attempts to open a device.
const DetectInterval = time.Second

// Source keeps the latest joystick state and provides axes as
// analog readings followed by buttons as digital readings.
// Axis values are offset by 0x8000 so the center is 32768.
type Source struct {
	DeviceIndex int
	MaxAxes     int
	MaxButtons  int
	Verbose     bool

	lock    sync.Mutex
	name    string
	axes    []int16
	buttons []bool
}

// NewSource creates a Source auto detecting the device.
func NewSource() *Source {
	return &Source{DeviceIndex: -1, MaxAxes: -1, MaxButtons: -1}
}

// AddToLoop implements LoopAdder.
func (s *Source) AddToLoop(l *fx.Loop) {
	l.AddRunnable(s)
}

// Name implements Named.
func (s *Source) Name() string {
	return "joystick"
}

// Connected indicates a device is opened.
func (s *Source) Connected() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.name != ""
}

// Read implements sampler.Source.
func (s *Source) Read(fx.ControlContext) ([]sampler.Reading, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	axes, buttons := s.axes, s.buttons
	if s.MaxAxes >= 0 && len(axes) > s.MaxAxes {
		axes = axes[:s.MaxAxes]
	}
	if s.MaxButtons >= 0 && len(buttons) > s.MaxButtons {
		buttons = buttons[:s.MaxButtons]
	}
	readings := make([]sampler.Reading, 0, len(axes)+len(buttons))
	for _, val := range axes {
		readings = append(readings, sampler.AnalogReading(AxisValue(val)))
	}
	for _, pressed := range buttons {
		readings = append(readings, sampler.DigitalReading(pressed))
	}
	return readings, nil
}

// AxisValue maps a signed axis position to an unsigned reading.
func AxisValue(val int16) uint16 {
	return uint16(int32(val) + 0x8000)
}

// Run implements Runnable.
func (s *Source) Run(ctx context.Context) error {
	loopCtl := fx.LoopCtlFrom(ctx)
	detect := time.After(0)
	var eventCh chan device.Event
	var dev device.Device
	defer func() {
		if dev != nil {
			dev.Close()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-detect:
			detect = nil
			var err error
			if dev, err = s.open(); err != nil || dev == nil {
				detect = time.After(DetectInterval)
				continue
			}
			glog.Infof("joystick %d %q opened, %d axes %d buttons",
				dev.Index(), dev.Name(), dev.AxisCount(), dev.ButtonCount())
			s.connect(dev)
			eventCh = make(chan device.Event, 1)
			go s.poll(ctx, dev, eventCh)
		case ev, ok := <-eventCh:
			if !ok {
				dev.Close()
				dev, eventCh = nil, nil
				s.disconnect()
				detect = time.After(DetectInterval)
			} else if !s.apply(ev) {
				continue
			}
			loopCtl.TriggerNext()
		}
	}
}

func (s *Source) open() (dev device.Device, err error) {
	if s.DeviceIndex >= 0 {
		if dev, err = device.Open(s.DeviceIndex); err != nil {
			glog.V(1).Infof("open joystick %d error: %v", s.DeviceIndex, err)
		}
		return
	}
	if dev, err = device.DetectAndOpen(0); err != nil {
		glog.V(1).Infof("detect joystick error: %v", err)
	}
	return
}

// poll forwards events until a read error or ctx is done.
func (s *Source) poll(ctx context.Context, dev device.EventReader, ch chan<- device.Event) {
	defer close(ch)
	for {
		ev, err := dev.ReadEvent()
		if err != nil {
			if ctx.Err() == nil {
				glog.Warningf("joystick read error: %v", err)
			}
			return
		}
		select {
		case ch <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Source) connect(dev device.Device) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.name = dev.Name()
	if s.name == "" {
		s.name = "unknown"
	}
	s.axes = make([]int16, dev.AxisCount())
	s.buttons = make([]bool, dev.ButtonCount())
}

func (s *Source) disconnect() {
	s.lock.Lock()
	defer s.lock.Unlock()
	glog.Warningf("joystick %q disconnected", s.name)
	s.name, s.axes, s.buttons = "", nil, nil
}

// apply updates the state and reports whether anything changed.
func (s *Source) apply(ev device.Event) bool {
	if s.Verbose {
		var prefix string
		if ev.IsInit() {
			prefix = "[INIT] "
		}
		switch e := ev.(type) {
		case device.AxisEvent:
			glog.Infof(prefix+"axis %d: %d", e.Index(), e.Value())
		case device.ButtonEvent:
			glog.Infof(prefix+"button %d: %v", e.Index(), e.Pressed())
		}
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	n := ev.Index()
	switch e := ev.(type) {
	case device.AxisEvent:
		for len(s.axes) <= n {
			s.axes = append(s.axes, 0)
		}
		val := int16(e.Value())
		if s.axes[n] == val {
			return false
		}
		s.axes[n] = val
	case device.ButtonEvent:
		for len(s.buttons) <= n {
			s.buttons = append(s.buttons, false)
		}
		if s.buttons[n] == e.Pressed() {
			return false
		}
		s.buttons[n] = e.Pressed()
	default:
		return false
	}
	return true
}
