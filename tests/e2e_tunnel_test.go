package tests

import (
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/tracefunnel/trace-funnel/internal/tunnel"
)

// The forwarder fronts the echo service the way the deployed tunnel fronts
// port 5000; a plain net.Dialer stands in for the SSH client.
func TestTunnelFrontsEchoServer(t *testing.T) {
	echoAddr := strings.TrimPrefix(startEchoServer(t), "http://")

	fwd := tunnel.NewForwarder("127.0.0.1:0", echoAddr, &net.Dialer{})
	if err := fwd.Start(); err != nil {
		t.Fatalf("starting forwarder: %v", err)
	}
	t.Cleanup(func() {
		if err := fwd.Stop(); err != nil {
			t.Errorf("stopping forwarder: %v", err)
		}
	})

	client := &http.Client{
		Timeout:   5 * time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}

	resp, err := client.Get("http://" + fwd.Addr() + "/")
	if err != nil {
		t.Fatalf("GET through tunnel: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if got := strings.TrimSpace(string(body)); got != `"success"` {
		t.Errorf("body = %q, want %q", got, `"success"`)
	}
}
