package capture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/mwestcott/hexdrive/internal/frame"
)

func TestRecorderWritesOnePacketPerFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.pcap")

	rec, err := NewRecorder(path, "192.168.4.1", 5555)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	f := frame.Neutral()
	f.Power = 100
	f.DurationTicks = 325
	frames := [][]byte{
		frame.Encode(frame.Neutral()),
		frame.Encode(f),
		frame.Encode(frame.Neutral()),
	}
	for _, data := range frames {
		if err := rec.Record(data); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open capture: %v", err)
	}
	defer file.Close()

	reader, err := pcapgo.NewReader(file)
	if err != nil {
		t.Fatalf("read pcap header: %v", err)
	}

	var payloads [][]byte
	for {
		data, _, err := reader.ReadPacketData()
		if err != nil {
			break
		}
		pkt := gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.Default)
		app := pkt.ApplicationLayer()
		if app == nil {
			t.Fatal("packet has no payload")
		}
		payloads = append(payloads, app.Payload())
	}

	if len(payloads) != len(frames) {
		t.Fatalf("capture has %d packets, want %d", len(payloads), len(frames))
	}
	for i := range frames {
		if string(payloads[i]) != string(frames[i]) {
			t.Errorf("packet %d payload = % x, want % x", i, payloads[i], frames[i])
		}
	}
}

func TestRecordAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.pcap")
	rec, err := NewRecorder(path, "robot.local", 5555)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}
	rec.Close()

	if err := rec.Record(frame.Encode(frame.Neutral())); err == nil {
		t.Error("Record() after Close expected error, got nil")
	}
}
