package script

// Drive scripts: a YAML list of command steps executed through the scheduler

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mwestcott/hexdrive/internal/errors"
)

// Step is one scripted command. Value carries meters, degrees or seconds
// depending on the command.
type Step struct {
	Command string  `yaml:"command"`
	Value   float64 `yaml:"value"`
}

// Driver is the command surface a script drives; *robot.Robot implements it.
type Driver interface {
	GoForward(meters float64)
	GoBack(meters float64)
	TurnLeft(degrees float64)
	TurnRight(degrees float64)
	TiltForward(seconds float64)
	TiltBack(seconds float64)
	TiltLeft(seconds float64)
	TiltRight(seconds float64)
	Rest(seconds float64)
}

var commands = map[string]func(Driver, float64){
	"forward":      Driver.GoForward,
	"back":         Driver.GoBack,
	"turn_left":    Driver.TurnLeft,
	"turn_right":   Driver.TurnRight,
	"tilt_forward": Driver.TiltForward,
	"tilt_back":    Driver.TiltBack,
	"tilt_left":    Driver.TiltLeft,
	"tilt_right":   Driver.TiltRight,
	"rest":         Driver.Rest,
}

// Load reads and validates a drive script.
func Load(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapScriptError(fmt.Errorf("read script: %w", err), path)
	}

	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, errors.WrapScriptError(fmt.Errorf("parse YAML: %w", err), path)
	}

	if err := Validate(steps); err != nil {
		return nil, errors.WrapScriptError(err, path)
	}
	return steps, nil
}

// Validate checks every step against the known commands and value rules.
func Validate(steps []Step) error {
	if len(steps) == 0 {
		return fmt.Errorf("script has no steps")
	}
	for i, s := range steps {
		if _, ok := commands[s.Command]; !ok {
			return fmt.Errorf("steps[%d]: unknown command %q", i, s.Command)
		}
		if s.Command == "rest" {
			if s.Value < 0 {
				return fmt.Errorf("steps[%d]: rest value must be >= 0", i)
			}
			continue
		}
		if s.Value <= 0 {
			return fmt.Errorf("steps[%d]: %s value must be positive", i, s.Command)
		}
	}
	return nil
}

// Run enqueues every step in order. Advancement is the scheduler's business;
// callers poll for drain.
func Run(steps []Step, d Driver) {
	for _, s := range steps {
		commands[s.Command](d, s.Value)
	}
}
