package ui

// Interactive driving console

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwestcott/hexdrive/internal/frame"
	"github.com/mwestcott/hexdrive/internal/robot"
	"github.com/mwestcott/hexdrive/internal/scheduler"
	"github.com/mwestcott/hexdrive/internal/session"
)

// Step sizes for one keypress.
const (
	stepMeters  = 0.25
	stepDegrees = 30
	stepTiltSec = 1
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
)

type refreshMsg time.Time

type consoleModel struct {
	bot    *robot.Robot
	host   string
	port   int
	status string
}

func newConsoleModel(bot *robot.Robot, host string, port int) consoleModel {
	return consoleModel{bot: bot, host: host, port: port}
}

func refreshTick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (m consoleModel) Init() tea.Cmd {
	return refreshTick()
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return m, refreshTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.bot.Disconnect()
			return m, tea.Quit
		case "up", "w":
			m.bot.GoForward(stepMeters)
			m.status = fmt.Sprintf("forward %.2f m", stepMeters)
		case "down", "s":
			m.bot.GoBack(stepMeters)
			m.status = fmt.Sprintf("back %.2f m", stepMeters)
		case "left", "a":
			m.bot.TurnLeft(stepDegrees)
			m.status = fmt.Sprintf("turn left %d deg", stepDegrees)
		case "right", "d":
			m.bot.TurnRight(stepDegrees)
			m.status = fmt.Sprintf("turn right %d deg", stepDegrees)
		case "t":
			m.bot.TiltForward(stepTiltSec)
			m.status = "tilt forward"
		case "g":
			m.bot.TiltBack(stepTiltSec)
			m.status = "tilt back"
		case "f":
			m.bot.TiltLeft(stepTiltSec)
			m.status = "tilt left"
		case "h":
			m.bot.TiltRight(stepTiltSec)
			m.status = "tilt right"
		case " ":
			m.bot.Rest(0)
			m.status = "rest"
		case "c":
			data := frame.Encode(m.bot.Session().CurrentFrame())
			if err := clipboard.WriteAll(fmt.Sprintf("% x", data)); err != nil {
				m.status = fmt.Sprintf("copy failed: %v", err)
			} else {
				m.status = "frame hex copied to clipboard"
			}
		}
	}
	return m, nil
}

func (m consoleModel) View() string {
	sessPhase := m.bot.Session().Phase()
	schedPhase := m.bot.Scheduler().Phase()
	current := m.bot.Session().CurrentFrame()

	phaseStyle := labelStyle
	if sessPhase == session.PhaseConnected {
		phaseStyle = activeStyle
	}
	runStyle := labelStyle
	if schedPhase == scheduler.PhaseRunning {
		runStyle = activeStyle
	}

	s := titleStyle.Render("hexdrive") + "  " +
		labelStyle.Render(fmt.Sprintf("%s:%d", m.host, m.port)) + "\n\n"
	s += labelStyle.Render("session   ") + phaseStyle.Render(sessPhase.String()) + "\n"
	s += labelStyle.Render("scheduler ") + runStyle.Render(schedPhase.String()) +
		labelStyle.Render(fmt.Sprintf("  queue %d", m.bot.Scheduler().QueueLen())) + "\n"
	s += labelStyle.Render("frame     ") + valueStyle.Render(fmt.Sprintf("% x", frame.Encode(current))) + "\n"
	s += labelStyle.Render("          ") + valueStyle.Render(describeFrame(current)) + "\n"
	if m.status != "" {
		s += "\n" + statusStyle.Render(m.status) + "\n"
	}
	s += "\n" + helpStyle.Render("arrows/wasd move+turn  t/g tilt fwd/back  f/h tilt left/right") + "\n"
	s += helpStyle.Render("space rest  c copy frame hex  q quit") + "\n"
	return s
}

func describeFrame(f frame.Frame) string {
	switch {
	case f.Power > 0:
		return fmt.Sprintf("walking power=%d angle=%d for %.1fs", f.Power, f.Angle, f.Duration())
	case f.Rotation != 0:
		return fmt.Sprintf("rotating %d for %.1fs", f.Rotation, f.Duration())
	case f.StaticTilt || f.MovingTilt:
		return fmt.Sprintf("tilting ax=%d ay=%d for %.1fs", f.AccelX, f.AccelY, f.Duration())
	}
	return "at rest"
}

// RunConsole connects the robot and runs the interactive console until the
// user quits. Disconnect happens on the way out.
func RunConsole(bot *robot.Robot, host string, port int) error {
	bot.Connect(host, port)
	p := tea.NewProgram(newConsoleModel(bot, host, port))
	if _, err := p.Run(); err != nil {
		bot.Disconnect()
		return fmt.Errorf("console: %w", err)
	}
	return nil
}
