package ui

// Connection form shown when no target was given on the command line

import (
	"fmt"
	"net"
	"strconv"

	"github.com/charmbracelet/huh"
)

// ConnectTarget is the result of the connect form.
type ConnectTarget struct {
	Host string
	Port int
}

func buildConnectForm(host, port *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Robot host").
				Description("IP address of the hexapod (its AP default is 192.168.4.1).").
				Key("host").
				Validate(validateHost).
				Value(host),
			huh.NewInput().
				Title("Stream port").
				Description("TCP port the robot listens on for control frames.").
				Key("port").
				Validate(validatePort).
				Value(port),
		),
	)
}

// RunConnectForm prompts for the robot target, seeded with defaults.
func RunConnectForm(defaultHost string, defaultPort int) (ConnectTarget, error) {
	host := defaultHost
	port := strconv.Itoa(defaultPort)

	form := buildConnectForm(&host, &port)
	if err := form.Run(); err != nil {
		return ConnectTarget{}, fmt.Errorf("connect form: %w", err)
	}

	p, err := strconv.Atoi(port)
	if err != nil {
		return ConnectTarget{}, fmt.Errorf("parse port: %w", err)
	}
	return ConnectTarget{Host: host, Port: p}, nil
}

func validateHost(s string) error {
	if s == "" {
		return fmt.Errorf("host is required")
	}
	if ip := net.ParseIP(s); ip == nil {
		// Hostnames are allowed; reject anything with spaces.
		for _, r := range s {
			if r == ' ' {
				return fmt.Errorf("not a valid host")
			}
		}
	}
	return nil
}

func validatePort(s string) error {
	p, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if p <= 0 || p > 65535 {
		return fmt.Errorf("port out of range")
	}
	return nil
}
