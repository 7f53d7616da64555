package network

import (
	"context"
	"errors"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/urls"
)

// TextGetter fetches a body as trimmed text.
type TextGetter interface {
	GetText(ctx context.Context, url string) (string, error)
}

// Prober checks that the public internet is reachable and reports the public IP.
type Prober interface {
	Probe(ctx context.Context) (string, error)
}

// HTTPProber probes an echo-IP endpoint. Any non-2xx answer is a failure.
type HTTPProber struct {
	Client TextGetter
	URL    string
}

// NewHTTPProber creates a prober for the default endpoint.
func NewHTTPProber(client TextGetter) *HTTPProber {
	return &HTTPProber{Client: client, URL: urls.PublicIPProbe}
}

// Probe returns the public IP as reported by the endpoint.
func (p *HTTPProber) Probe(ctx context.Context) (string, error) {
	ip, err := p.Client.GetText(ctx, p.URL)
	if err != nil {
		return "", err
	}
	if ip == "" {
		return "", errors.New("empty public ip response")
	}
	return ip, nil
}
