package source

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// ClientConfig sisältää HTTP clientin konfiguraation
type ClientConfig struct {
	Timeout  time.Duration
	RetryMax int
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:  15 * time.Second,
		RetryMax: 2,
	}
}

// Client wrappaa retryavan HTTP clientin kaikille lähteille
type Client struct {
	http *retryablehttp.Client
}

// NewClient luo uuden HTTP clientin
func NewClient(cfg ClientConfig) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = 1 * time.Second
	rc.RetryWaitMax = 10 * time.Second
	rc.Logger = nil
	rc.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		// Proxy: nil ohittaa ympäristön proxy-asetukset kokonaan
		Transport: &http.Transport{Proxy: nil},
	}
	return &Client{http: rc}
}

// Get tekee GET pyynnön selaimen User-Agentilla
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return c.http.Do(req)
}
