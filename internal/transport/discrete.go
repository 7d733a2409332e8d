package transport

// One-shot HTTP delivery channel

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// HTTPTransport implements DiscreteTransport by issuing one GET per frame
// with the encoded bytes as a URL-safe base64 query parameter.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

var _ DiscreteTransport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a discrete transport targeting host:port.
func NewHTTPTransport(host string, port int) *HTTPTransport {
	return &HTTPTransport{
		baseURL: fmt.Sprintf("http://%s/send", net.JoinHostPort(host, fmt.Sprintf("%d", port))),
		client: &http.Client{
			Timeout: 3 * time.Second,
		},
	}
}

// Send delivers one frame. The response body is drained and discarded;
// only transport-level failures are reported.
func (t *HTTPTransport) Send(ctx context.Context, data []byte) error {
	query := url.Values{}
	query.Set("raw", base64.URLEncoding.EncodeToString(data))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send frame: %w", err)
	}
	defer resp.Body.Close()

	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
