package errors

import (
	"fmt"
	"strings"
)

// UserFriendlyError provides user-friendly error messages with context and hints
type UserFriendlyError struct {
	Message string
	Reason  string
	Hint    string
	Try     string
	Err     error
}

func (e UserFriendlyError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Reason != "" {
		buf.WriteString("\n  Reason: " + e.Reason)
	}
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	if e.Try != "" {
		buf.WriteString("\n  Try: " + e.Try)
	}
	if e.Err != nil {
		buf.WriteString("\n  Details: " + e.Err.Error())
	}
	return buf.String()
}

func (e UserFriendlyError) Unwrap() error {
	return e.Err
}

// WrapNetworkError wraps connection errors with user-friendly context
func WrapNetworkError(err error, host string, port int) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Failed to reach the robot at %s:%d", host, port),
		Reason:  extractNetworkReason(err),
		Hint:    "Make sure the robot is powered on and you are on its WiFi network",
		Try:     fmt.Sprintf("hexdrive send --host %s", host),
		Err:     err,
	}
}

// WrapConfigError wraps configuration errors with user-friendly context
func WrapConfigError(err error, configPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Configuration error in %s", configPath),
		Reason:  err.Error(),
		Hint:    "Run without --config to use the built-in defaults",
		Try:     "hexdrive config --write " + configPath,
		Err:     err,
	}
}

// WrapScriptError wraps drive-script errors with user-friendly context
func WrapScriptError(err error, scriptPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Drive script error in %s", scriptPath),
		Reason:  err.Error(),
		Hint:    "Scripts are a YAML list of {command, value} steps",
		Try:     "hexdrive run --help",
		Err:     err,
	}
}

func extractNetworkReason(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return "Connection timeout - robot may be offline or unreachable"
	}
	if strings.Contains(errStr, "connection refused") {
		return "Connection refused - robot is not listening on this port"
	}
	if strings.Contains(errStr, "no route to host") {
		return "No route to host - wrong network or robot AP not joined"
	}
	if strings.Contains(errStr, "connection reset") {
		return "Connection reset - robot closed the connection unexpectedly"
	}

	return "Network communication failed"
}
