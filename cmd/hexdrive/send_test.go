package main

import (
	"testing"

	"github.com/mwestcott/hexdrive/internal/config"
	"github.com/mwestcott/hexdrive/internal/frame"
)

func TestBuildFrame(t *testing.T) {
	cfg := config.DefaultConfig()

	tests := []struct {
		name    string
		flags   sendFlags
		wantErr bool
		check   func(f frame.Frame) bool
	}{
		{
			"neutral defaults", sendFlags{}, false,
			func(f frame.Frame) bool { return f == frame.Neutral() },
		},
		{
			"full forward", sendFlags{power: 100, duration: 6.5}, false,
			func(f frame.Frame) bool { return f.Power == 100 && f.DurationTicks == 325 },
		},
		{
			"power off", sendFlags{powerOff: true}, false,
			func(f frame.Frame) bool { return !f.PoweredOn },
		},
		{
			"custom sliders", sendFlags{sliders: "1,2,3,4,5,6,7,8,9"}, false,
			func(f frame.Frame) bool { return f.Sliders == [9]byte{1, 2, 3, 4, 5, 6, 7, 8, 9} },
		},
		{"power out of range", sendFlags{power: 101}, true, nil},
		{"angle out of range", sendFlags{angle: 181}, true, nil},
		{"rotation out of range", sendFlags{rotation: -101}, true, nil},
		{"negative duration", sendFlags{duration: -1}, true, nil},
		{"short sliders", sendFlags{sliders: "1,2,3"}, true, nil},
		{"bad slider value", sendFlags{sliders: "1,2,3,4,5,6,7,8,abc"}, true, nil},
		{"slider over byte", sendFlags{sliders: "1,2,3,4,5,6,7,8,300"}, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.flags.buildFrame(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildFrame() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.check != nil && !tt.check(f) {
				t.Errorf("buildFrame() = %+v", f)
			}
		})
	}
}

func TestBuildFrameUsesConfigSliders(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sliders = []int{9, 8, 7, 6, 5, 4, 3, 2, 1}

	f, err := (&sendFlags{}).buildFrame(cfg)
	if err != nil {
		t.Fatalf("buildFrame() error = %v", err)
	}
	if f.Sliders != [9]byte{9, 8, 7, 6, 5, 4, 3, 2, 1} {
		t.Errorf("sliders = %v, want config values", f.Sliders)
	}
}
