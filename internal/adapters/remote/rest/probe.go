package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/bnema/studypomo/internal/ports"
)

// Probe reports the document API as reachable when it answers at all.
// Any HTTP status counts; only transport failures mean offline.
type Probe struct {
	URL        string
	HTTPClient *http.Client
	Timeout    time.Duration
}

var _ ports.Connectivity = Probe{}

func (p Probe) Online(ctx context.Context) bool {
	if p.URL == "" {
		return false
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, p.URL, nil)
	if err != nil {
		return false
	}

	client := p.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return true
}
