package session

// RobotSession: connection lifecycle, current frame, streaming cadence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mwestcott/hexdrive/internal/frame"
	"github.com/mwestcott/hexdrive/internal/logging"
	"github.com/mwestcott/hexdrive/internal/transport"
)

// Phase is the connection phase of a session
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseConnecting
	PhaseConnected
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseConnecting:
		return "connecting"
	case PhaseConnected:
		return "connected"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Default timing parameters. The 100 ms cadence is the robot's 10 Hz
// liveness watchdog rate.
const (
	DefaultCadence        = 100 * time.Millisecond
	DefaultConnectTimeout = 5 * time.Second
)

// FrameRecorder receives a copy of every transmitted wire frame.
type FrameRecorder interface {
	Record(data []byte) error
}

// Options tunes session timing and the neutral frame's slider settings.
type Options struct {
	Cadence        time.Duration
	ConnectTimeout time.Duration
	Sliders        [frame.SliderCount]byte // zero value selects the factory defaults
}

// Session owns the connection state and the single current frame. While
// connected, a ticker re-sends the current frame at the stream cadence;
// otherwise Apply falls through to one discrete send per frame.
type Session struct {
	mu       sync.Mutex
	phase    Phase
	current  frame.Frame
	neutral  frame.Frame
	stream   transport.StreamTransport
	discrete transport.DiscreteTransport
	recorder FrameRecorder
	log      *logging.Logger

	cadence        time.Duration
	connectTimeout time.Duration

	stopStream chan struct{}
	streamDone chan struct{}
}

// New creates a session over the given transports. Either transport may be
// nil when the corresponding delivery mode is unused.
func New(stream transport.StreamTransport, discrete transport.DiscreteTransport, log *logging.Logger, opts Options) *Session {
	if opts.Cadence <= 0 {
		opts.Cadence = DefaultCadence
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}
	neutral := frame.Neutral()
	if opts.Sliders != ([frame.SliderCount]byte{}) {
		neutral.Sliders = opts.Sliders
	}
	return &Session{
		phase:          PhaseIdle,
		current:        neutral,
		neutral:        neutral,
		stream:         stream,
		discrete:       discrete,
		log:            log,
		cadence:        opts.Cadence,
		connectTimeout: opts.ConnectTimeout,
	}
}

// SetRecorder installs a recorder for transmitted frames. Pass nil to stop
// recording.
func (s *Session) SetRecorder(r FrameRecorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = r
}

// Phase returns the current connection phase
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// CurrentFrame returns the frame the streaming sender transmits
func (s *Session) CurrentFrame() frame.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Connect opens the streaming connection to host:port. Non-blocking: the
// dial runs in the background with a bounded timeout. Failure is logged and
// leaves the session idle; there is no automatic retry.
func (s *Session) Connect(host string, port int) {
	s.mu.Lock()
	if s.phase != PhaseIdle {
		s.mu.Unlock()
		s.log.Warn("connect ignored: session is %s", s.phase)
		return
	}
	if s.stream == nil {
		s.mu.Unlock()
		s.log.Warn("connect ignored: no streaming transport configured")
		return
	}
	s.phase = PhaseConnecting
	timeout := s.connectTimeout
	s.mu.Unlock()

	s.log.LogStartup(host, port, s.cadence)

	addr := fmt.Sprintf("%s:%d", host, port)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := s.stream.Connect(ctx, addr)

		s.mu.Lock()
		if s.phase != PhaseConnecting {
			// Disconnected while dialing; give the connection back.
			s.mu.Unlock()
			if err == nil {
				s.stream.Disconnect()
			}
			return
		}
		if err != nil {
			s.phase = PhaseIdle
			s.mu.Unlock()
			s.log.Error("connect %s failed: %v", addr, err)
			return
		}
		s.phase = PhaseConnected
		s.stopStream = make(chan struct{})
		s.streamDone = make(chan struct{})
		stop, done := s.stopStream, s.streamDone
		s.mu.Unlock()

		s.log.Info("Connected to %s", addr)
		go s.streamLoop(stop, done)
	}()
}

// Disconnect stops the streaming ticker, transmits one final neutral frame,
// closes the connection and resets the current frame to neutral.
func (s *Session) Disconnect() {
	s.mu.Lock()
	stop, done := s.stopStream, s.streamDone
	s.stopStream, s.streamDone = nil, nil
	wasConnected := s.phase == PhaseConnected
	s.phase = PhaseIdle
	s.current = s.neutral
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	if wasConnected {
		s.transmit(s.neutral)
		if err := s.stream.Disconnect(); err != nil {
			s.log.Error("disconnect: %v", err)
		}
		s.log.Info("Disconnected")
	}
}

// Apply installs f as the current frame. While connected it takes effect on
// the next streaming tick; otherwise it is delivered once over the discrete
// channel.
func (s *Session) Apply(f frame.Frame) {
	s.mu.Lock()
	s.current = f
	connected := s.phase == PhaseConnected
	s.mu.Unlock()

	if !connected {
		s.SendOnce(f)
	}
}

// SendOnce delivers one frame over the discrete channel, independent of the
// connection phase. Fire-and-forget: failures are logged, never surfaced.
func (s *Session) SendOnce(f frame.Frame) {
	s.mu.Lock()
	discrete := s.discrete
	s.mu.Unlock()

	if discrete == nil {
		s.log.Debug("sendOnce dropped: no discrete transport configured")
		return
	}

	data := frame.Encode(f)
	s.record(data)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := discrete.Send(ctx, data); err != nil {
			s.log.Error("one-shot send failed: %v", err)
		}
	}()
}

// streamLoop re-sends the current frame at the stream cadence until stopped.
func (s *Session) streamLoop(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.cadence)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			f := s.current
			s.mu.Unlock()
			s.transmit(f)
		}
	}
}

// transmit writes one frame to the stream, recording it on the way out.
func (s *Session) transmit(f frame.Frame) {
	data := frame.Encode(f)
	s.record(data)
	s.log.LogHex("stream frame", data)

	ctx, cancel := context.WithTimeout(context.Background(), s.cadence)
	defer cancel()
	if err := s.stream.Send(ctx, data); err != nil {
		s.log.Debug("stream send failed: %v", err)
	}
}

func (s *Session) record(data []byte) {
	s.mu.Lock()
	rec := s.recorder
	s.mu.Unlock()
	if rec == nil {
		return
	}
	if err := rec.Record(data); err != nil {
		s.log.Error("frame capture failed: %v", err)
	}
}
