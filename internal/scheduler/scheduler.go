package scheduler

// FIFO command scheduler with duration-driven advancement

import (
	"fmt"
	"sync"
	"time"

	"github.com/mwestcott/hexdrive/internal/frame"
	"github.com/mwestcott/hexdrive/internal/logging"
)

// Phase is the scheduler run state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// timerGuard pads every duration timer against clock skew between this side
// and the robot's tick counter.
const timerGuard = 100 * time.Millisecond

// FrameSink receives resolved frames. *session.Session implements it.
type FrameSink interface {
	Apply(frame.Frame)
}

// Scheduler owns the FIFO queue of pending commands. Exactly one command is
// active at a time; its duration timer gates advancement to the next. The
// queue drains to a neutral frame and the scheduler returns to idle.
type Scheduler struct {
	mu      sync.Mutex
	phase   Phase
	queue   []Command
	timer   *time.Timer
	sink    FrameSink
	log     *logging.Logger
	timing  Timing
	sliders [frame.SliderCount]byte
}

// New creates a scheduler driving the given sink.
func New(sink FrameSink, log *logging.Logger, timing Timing) *Scheduler {
	if timing.MaxSpeedSecPerMeter <= 0 || timing.RotationTimeSec <= 0 {
		timing = DefaultTiming()
	}
	return &Scheduler{
		phase:   PhaseIdle,
		sink:    sink,
		log:     log,
		timing:  timing,
		sliders: frame.DefaultSliders(),
	}
}

// SetSliders installs the slider settings every resolved frame carries, so
// configured gait tuning survives across commands and the drain frame.
func (s *Scheduler) SetSliders(sliders [frame.SliderCount]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sliders = sliders
}

// neutral returns the all-stop frame carrying the configured sliders.
func (s *Scheduler) neutral() frame.Frame {
	f := frame.Neutral()
	f.Sliders = s.sliders
	return f
}

// Phase returns the current run state
func (s *Scheduler) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// QueueLen returns the number of commands waiting behind the active one
func (s *Scheduler) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// GoForward walks forward the given number of meters
func (s *Scheduler) GoForward(meters float64) {
	s.push(Command{Kind: KindGoForward, Value: meters}, false)
}

// GoBack walks backward the given number of meters
func (s *Scheduler) GoBack(meters float64) {
	s.push(Command{Kind: KindGoBack, Value: meters}, false)
}

// TurnLeft rotates counterclockwise by the given angle in degrees
func (s *Scheduler) TurnLeft(degrees float64) {
	s.push(Command{Kind: KindTurnLeft, Value: degrees}, false)
}

// TurnRight rotates clockwise by the given angle in degrees
func (s *Scheduler) TurnRight(degrees float64) {
	s.push(Command{Kind: KindTurnRight, Value: degrees}, false)
}

// TiltForward tilts the body forward for the given number of seconds
func (s *Scheduler) TiltForward(seconds float64) {
	s.push(Command{Kind: KindTiltForward, Value: seconds}, false)
}

// TiltBack tilts the body backward for the given number of seconds
func (s *Scheduler) TiltBack(seconds float64) {
	s.push(Command{Kind: KindTiltBack, Value: seconds}, false)
}

// TiltLeft tilts the body left for the given number of seconds
func (s *Scheduler) TiltLeft(seconds float64) {
	s.push(Command{Kind: KindTiltLeft, Value: seconds}, false)
}

// TiltRight tilts the body right for the given number of seconds
func (s *Scheduler) TiltRight(seconds float64) {
	s.push(Command{Kind: KindTiltRight, Value: seconds}, false)
}

// Rest holds the neutral stance for the given number of seconds. Rest(0) is
// legal: it applies the neutral frame without arming a timer.
func (s *Scheduler) Rest(seconds float64) {
	s.push(Command{Kind: KindRest, Value: seconds}, true)
}

// SendCustom enqueues a caller-built frame as given. The staticTilt and
// movingTilt exclusivity invariant is not enforced on this path; it is the
// caller's responsibility.
func (s *Scheduler) SendCustom(f frame.Frame) {
	if f.StaticTilt && f.MovingTilt {
		s.log.Warn("custom frame sets both staticTilt and movingTilt")
	}
	s.enqueue(Command{Kind: KindSendCustom, Frame: f})
}

// push validates the argument and enqueues the command. Non-positive values
// (or negative ones when zero is allowed) are warnings, never errors.
func (s *Scheduler) push(cmd Command, allowZero bool) {
	if cmd.Value < 0 || (!allowZero && cmd.Value == 0) {
		s.log.Warn("%s(%v) ignored: argument must be positive", cmd.Kind, cmd.Value)
		return
	}
	s.enqueue(cmd)
}

// enqueue appends the command and, when idle, dispatches it synchronously.
func (s *Scheduler) enqueue(cmd Command) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = append(s.queue, cmd)
	if s.phase == PhaseIdle {
		s.dispatchNextLocked()
	}
}

// dispatchNextLocked pops the queue head, applies its frame and arms the
// duration timer. Zero-duration commands advance immediately without a
// timer; an empty queue drains to neutral. The drain apply is skipped when
// the last dispatched frame was already neutral, so a trailing Rest(0)
// never produces a duplicate one-shot send.
func (s *Scheduler) dispatchNextLocked() {
	lastNeutral := false
	for len(s.queue) > 0 {
		cmd := s.queue[0]
		s.queue = s.queue[1:]

		f, dur := s.resolve(cmd)
		s.phase = PhaseRunning

		duration := time.Duration(dur * float64(time.Second))
		s.log.LogDispatch(cmd.Kind.String(), duration, f.DurationTicks, len(s.queue))
		s.sink.Apply(f)

		if dur > 0 {
			s.timer = time.AfterFunc(duration+timerGuard, s.advance)
			return
		}
		lastNeutral = f == s.neutral()
	}
	s.phase = PhaseIdle
	if !lastNeutral {
		s.sink.Apply(s.neutral())
	}
}

// advance is the duration timer callback.
func (s *Scheduler) advance() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timer = nil
	if s.phase != PhaseRunning {
		// Aborted while the timer was in flight.
		return
	}
	s.dispatchNextLocked()
}

// Abort cancels the active timer, clears the queue and forces idle. It does
// not touch the session; disconnect handles the final neutral frame.
func (s *Scheduler) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.queue = nil
	s.phase = PhaseIdle
}
