package robot

import (
	"testing"
	"time"

	"github.com/mwestcott/hexdrive/internal/config"
	"github.com/mwestcott/hexdrive/internal/frame"
	"github.com/mwestcott/hexdrive/internal/logging"
	"github.com/mwestcott/hexdrive/internal/scheduler"
	"github.com/mwestcott/hexdrive/internal/session"
)

// newTestRobot wires a robot with no transports so tests never touch the
// network; frames applied while disconnected are simply dropped.
func newTestRobot(t *testing.T) *Robot {
	t.Helper()
	return NewWithTransports(config.DefaultConfig(), logging.Nop(), nil, nil)
}

func TestDisconnectClearsQueue(t *testing.T) {
	bot := newTestRobot(t)

	bot.GoForward(5) // 65s with default timing, outlives the test
	bot.TurnLeft(90)
	bot.TurnRight(90)

	if got := bot.Scheduler().QueueLen(); got != 2 {
		t.Errorf("QueueLen() = %d before disconnect, want 2", got)
	}

	bot.Disconnect()

	if bot.Scheduler().Phase() != scheduler.PhaseIdle {
		t.Errorf("scheduler phase = %s, want idle", bot.Scheduler().Phase())
	}
	if got := bot.Scheduler().QueueLen(); got != 0 {
		t.Errorf("QueueLen() = %d after disconnect, want 0", got)
	}
	if bot.Session().Phase() != session.PhaseIdle {
		t.Errorf("session phase = %s, want idle", bot.Session().Phase())
	}
	if bot.Session().CurrentFrame() != frame.Neutral() {
		t.Errorf("current frame = %+v, want neutral", bot.Session().CurrentFrame())
	}
	if !bot.Idle() {
		t.Error("Idle() = false after disconnect")
	}
}

func TestCommandReachesSession(t *testing.T) {
	bot := newTestRobot(t)
	defer bot.Disconnect()

	bot.GoForward(0.5)

	f := bot.Session().CurrentFrame()
	if f.Power != 100 || f.Angle != 0 {
		t.Errorf("current frame = %+v, want full power forward", f)
	}
	if f.DurationTicks != 325 {
		t.Errorf("duration ticks = %d, want 325", f.DurationTicks)
	}
}

func TestInvalidCommandLeavesIdle(t *testing.T) {
	bot := newTestRobot(t)

	bot.GoForward(-1)
	bot.Rest(-2)

	if !bot.Idle() {
		t.Error("Idle() = false after rejected commands")
	}
}

func TestConfigSlidersReachDispatchedFrames(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sliders = []int{9, 8, 7, 6, 5, 4, 3, 2, 1}
	bot := NewWithTransports(cfg, logging.Nop(), nil, nil)
	defer bot.Disconnect()

	bot.GoForward(0.5)

	want := [frame.SliderCount]byte{9, 8, 7, 6, 5, 4, 3, 2, 1}
	if got := bot.Session().CurrentFrame().Sliders; got != want {
		t.Errorf("dispatched frame sliders = %v, want config sliders %v", got, want)
	}
}

func TestIdleAfterShortCommand(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Timing.MaxSpeedSecPerMeter = 0.2
	bot := NewWithTransports(cfg, logging.Nop(), nil, nil)

	bot.GoForward(0.1) // 20ms + guard

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) && !bot.Idle() {
		time.Sleep(10 * time.Millisecond)
	}
	if !bot.Idle() {
		t.Fatal("robot never drained")
	}
	if bot.Session().CurrentFrame() != frame.Neutral() {
		t.Errorf("current frame = %+v, want neutral after drain", bot.Session().CurrentFrame())
	}
}
