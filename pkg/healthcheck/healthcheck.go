package healthcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	// DefaultURL is the upstream health endpoint the proxy bootstrap polls.
	DefaultURL = "http://app:8080/health"

	// DefaultInterval is the fixed delay between probe attempts.
	DefaultInterval = 5 * time.Second

	// DefaultTimeout bounds a single probe request, not the overall wait.
	DefaultTimeout = 2 * time.Second
)

// Prober polls a health endpoint until it reports success.
type Prober struct {
	URL      string
	Interval time.Duration

	// Retries caps the number of attempts. Zero means poll forever.
	Retries int

	// Out receives progress output. Defaults to os.Stdout.
	Out io.Writer

	client *http.Client
}

// New returns a Prober with the fixed bootstrap defaults for the given URL.
func New(url string) *Prober {
	return &Prober{
		URL:      url,
		Interval: DefaultInterval,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
}

func (p *Prober) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

func (p *Prober) httpClient() *http.Client {
	if p.client == nil {
		p.client = &http.Client{Timeout: DefaultTimeout}
	}
	return p.client
}

// Healthy performs a single probe. Success is any response with a status
// code below 300.
func (p *Prober) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return false
	}

	resp, err := p.httpClient().Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()

	return resp.StatusCode < 300
}

// Wait blocks until the endpoint reports healthy, the context is cancelled,
// or the retry cap (if any) is exhausted. The first success proceeds
// immediately without a trailing sleep.
func (p *Prober) Wait(ctx context.Context) error {
	interval := p.Interval
	if interval == 0 {
		interval = DefaultInterval
	}

	fmt.Fprintf(p.out(), "Waiting for %s to be ready...\n", p.URL)

	for attempt := 0; ; attempt++ {
		if p.Retries > 0 && attempt >= p.Retries {
			fmt.Fprintln(p.out())
			return fmt.Errorf("%s is not ready after %d attempts", p.URL, p.Retries)
		}

		if p.Healthy(ctx) {
			fmt.Fprintln(p.out())
			fmt.Fprintf(p.out(), "%s is ready!\n", p.URL)
			return nil
		}

		fmt.Fprint(p.out(), ".")

		select {
		case <-ctx.Done():
			fmt.Fprintln(p.out())
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
