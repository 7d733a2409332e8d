package robot

// Robot is the owned aggregate behind the public command surface: one
// session plus one scheduler per robot handle.

import (
	"github.com/mwestcott/hexdrive/internal/config"
	"github.com/mwestcott/hexdrive/internal/frame"
	"github.com/mwestcott/hexdrive/internal/logging"
	"github.com/mwestcott/hexdrive/internal/scheduler"
	"github.com/mwestcott/hexdrive/internal/session"
	"github.com/mwestcott/hexdrive/internal/transport"
)

// Robot bundles the session and the scheduler and keeps their teardown
// consistent: disconnect aborts queued work before the session resets.
type Robot struct {
	session *session.Session
	sched   *scheduler.Scheduler
	log     *logging.Logger
}

// New wires a robot from configuration: a TCP streaming transport, an HTTP
// discrete transport, the session and the scheduler on top.
func New(cfg *config.Config, log *logging.Logger) *Robot {
	return NewWithTransports(
		cfg,
		log,
		transport.NewTCPTransport(),
		transport.NewHTTPTransport(cfg.Robot.Host, cfg.Robot.DiscretePort),
	)
}

// NewWithTransports wires a robot over caller-supplied transports. Either
// transport may be nil; the corresponding delivery mode is then unused.
func NewWithTransports(cfg *config.Config, log *logging.Logger, stream transport.StreamTransport, discrete transport.DiscreteTransport) *Robot {
	sliders, _ := cfg.SliderBytes()
	sess := session.New(stream, discrete, log, session.Options{
		Cadence:        cfg.StreamCadence(),
		ConnectTimeout: cfg.ConnectTimeoutDuration(),
		Sliders:        sliders,
	})
	sched := scheduler.New(sess, log, scheduler.Timing{
		MaxSpeedSecPerMeter: cfg.Timing.MaxSpeedSecPerMeter,
		RotationTimeSec:     cfg.Timing.RotationTimeSec,
	})
	sched.SetSliders(sliders)
	return &Robot{session: sess, sched: sched, log: log}
}

// Session exposes the underlying session for phase polling and recording.
func (r *Robot) Session() *session.Session { return r.session }

// Scheduler exposes the underlying scheduler for phase polling.
func (r *Robot) Scheduler() *scheduler.Scheduler { return r.sched }

// Connect opens the streaming session. Non-blocking; poll Session().Phase().
func (r *Robot) Connect(host string, port int) {
	r.session.Connect(host, port)
}

// Disconnect clears the queue, cancels the active timer and tears the
// session down to a final neutral frame.
func (r *Robot) Disconnect() {
	r.sched.Abort()
	r.session.Disconnect()
}

// Command surface; all asynchronous, no completion signal.

func (r *Robot) GoForward(meters float64) { r.sched.GoForward(meters) }

func (r *Robot) GoBack(meters float64) { r.sched.GoBack(meters) }

func (r *Robot) TurnLeft(degrees float64) { r.sched.TurnLeft(degrees) }

func (r *Robot) TurnRight(degrees float64) { r.sched.TurnRight(degrees) }

func (r *Robot) TiltForward(seconds float64) { r.sched.TiltForward(seconds) }

func (r *Robot) TiltBack(seconds float64) { r.sched.TiltBack(seconds) }

func (r *Robot) TiltLeft(seconds float64) { r.sched.TiltLeft(seconds) }

func (r *Robot) TiltRight(seconds float64) { r.sched.TiltRight(seconds) }

func (r *Robot) Rest(seconds float64) { r.sched.Rest(seconds) }

func (r *Robot) SendCustom(f frame.Frame) { r.sched.SendCustom(f) }

// Idle reports whether both the scheduler and its queue are drained.
func (r *Robot) Idle() bool {
	return r.sched.Phase() == scheduler.PhaseIdle && r.sched.QueueLen() == 0
}
