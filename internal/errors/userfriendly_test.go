package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestUserFriendlyErrorFormat(t *testing.T) {
	inner := fmt.Errorf("dial TCP: connection refused")
	err := WrapNetworkError(inner, "192.168.4.1", 5555)

	msg := err.Error()
	if !strings.Contains(msg, "192.168.4.1:5555") {
		t.Errorf("message missing target: %q", msg)
	}
	if !strings.Contains(msg, "Connection refused") {
		t.Errorf("message missing reason: %q", msg)
	}
	if !stderrors.Is(err, inner) {
		t.Error("wrapped error does not unwrap to the original")
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	if WrapNetworkError(nil, "h", 1) != nil {
		t.Error("WrapNetworkError(nil) != nil")
	}
	if WrapConfigError(nil, "p") != nil {
		t.Error("WrapConfigError(nil) != nil")
	}
	if WrapScriptError(nil, "p") != nil {
		t.Error("WrapScriptError(nil) != nil")
	}
}

func TestExtractNetworkReason(t *testing.T) {
	tests := []struct {
		name string
		err  string
		want string
	}{
		{"timeout", "i/o timeout", "timeout"},
		{"deadline", "context deadline exceeded", "timeout"},
		{"refused", "connection refused", "refused"},
		{"no route", "no route to host", "route"},
		{"reset", "connection reset by peer", "reset"},
		{"other", "something odd", "Network communication failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractNetworkReason(fmt.Errorf("%s", tt.err))
			if !strings.Contains(strings.ToLower(got), strings.ToLower(tt.want)) {
				t.Errorf("extractNetworkReason(%q) = %q, want to contain %q", tt.err, got, tt.want)
			}
		})
	}
}
