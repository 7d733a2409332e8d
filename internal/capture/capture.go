package capture

// Frame capture: appends every transmitted control frame to a pcap file
// for offline inspection.

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// Recorder writes transmitted frames to a pcap file, each wrapped in a
// synthetic Ethernet/IPv4/TCP envelope toward the robot address so standard
// tooling can dissect the capture.
type Recorder struct {
	mu    sync.Mutex
	file  *os.File
	w     *pcapgo.Writer
	srcIP net.IP
	dstIP net.IP
	port  uint16
	seq   uint32
}

// NewRecorder creates a recorder writing to path. host/port name the robot
// endpoint stamped on the synthetic envelope; a host that is not a literal
// IP falls back to a documentation address.
func NewRecorder(path, host string, port int) (*Recorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create pcap: %w", err)
	}

	w := pcapgo.NewWriter(file)
	if err := w.WriteFileHeader(65535, layers.LinkTypeEthernet); err != nil {
		file.Close()
		return nil, fmt.Errorf("write pcap header: %w", err)
	}

	dstIP := net.ParseIP(host)
	if dstIP == nil {
		dstIP = net.IPv4(192, 0, 2, 20)
	}

	return &Recorder{
		file:  file,
		w:     w,
		srcIP: net.IPv4(192, 0, 2, 10),
		dstIP: dstIP,
		port:  uint16(port),
		seq:   1,
	}, nil
}

// Record appends one wire frame to the capture.
func (r *Recorder) Record(data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return fmt.Errorf("recorder closed")
	}

	buffer := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{
		FixLengths:       true,
		ComputeChecksums: true,
	}

	ethernet := &layers.Ethernet{
		SrcMAC:       []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x01},
		DstMAC:       []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x02},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    r.srcIP,
		DstIP:    r.dstIP,
	}
	tcp := &layers.TCP{
		SrcPort: layers.TCPPort(50000),
		DstPort: layers.TCPPort(r.port),
		ACK:     true,
		PSH:     true,
		Seq:     r.seq,
	}
	_ = tcp.SetNetworkLayerForChecksum(ip)
	r.seq += uint32(len(data))

	if err := gopacket.SerializeLayers(buffer, opts, ethernet, ip, tcp, gopacket.Payload(data)); err != nil {
		return fmt.Errorf("serialize packet: %w", err)
	}

	packet := buffer.Bytes()
	ci := gopacket.CaptureInfo{
		Timestamp:     time.Now(),
		CaptureLength: len(packet),
		Length:        len(packet),
	}
	if err := r.w.WritePacket(ci, packet); err != nil {
		return fmt.Errorf("write packet: %w", err)
	}
	return nil
}

// Close flushes and closes the capture file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
