package funding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"monkey-rumble/server/logging"
	loggingsystem "monkey-rumble/server/logging/system"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultMaxSeen      = 4096
	maxFetchAttempts    = 3
	maxResponseBytes    = 1 << 20
)

// PollerConfig wires a Poller to the transaction API. SchemaPath is optional;
// when set, every payload is validated before any event is delivered.
type PollerConfig struct {
	URL        string
	Interval   time.Duration
	SchemaPath string
	Client     *http.Client
	MaxSeen    int
}

// Poller periodically fetches the transaction API, filters duplicates and
// stale events, and hands normalized events to its handler. It never touches
// world state; the handler is expected to queue events for the tick loop.
type Poller struct {
	cfg       PollerConfig
	client    *http.Client
	schema    *jsonschema.Schema
	publisher logging.Publisher
	handler   func(Event)

	watermarkMs atomic.Int64
	seen        map[string]struct{}
	seenOrder   []string
}

// NewPoller builds a poller. The schema is compiled eagerly so a broken
// schema file fails at startup rather than on the first poll.
func NewPoller(cfg PollerConfig, pub logging.Publisher, handler func(Event)) (*Poller, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("funding poller: URL is required")
	}
	if handler == nil {
		return nil, fmt.Errorf("funding poller: handler is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultPollInterval
	}
	if cfg.MaxSeen <= 0 {
		cfg.MaxSeen = defaultMaxSeen
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Interval}
	}
	p := &Poller{
		cfg:       cfg,
		client:    client,
		publisher: pub,
		handler:   handler,
		seen:      make(map[string]struct{}, cfg.MaxSeen),
	}
	if cfg.SchemaPath != "" {
		schema, err := jsonschema.Compile(cfg.SchemaPath)
		if err != nil {
			return nil, fmt.Errorf("funding poller: compile schema %s: %w", cfg.SchemaPath, err)
		}
		p.schema = schema
	}
	return p, nil
}

// SetWatermark discards any event stamped before the given wall-clock
// millisecond. The driver bumps it on world reset.
func (p *Poller) SetWatermark(ms int64) {
	for {
		current := p.watermarkMs.Load()
		if ms <= current {
			return
		}
		if p.watermarkMs.CompareAndSwap(current, ms) {
			return
		}
	}
}

// Run polls until the context is cancelled. It never returns a non-context
// error; fetch failures are logged and retried on the next interval.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	p.pollOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context) {
	body, err := p.fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		loggingsystem.PollFailed(ctx, p.publisher, loggingsystem.PollFailedPayload{
			URL:      p.cfg.URL,
			Attempts: maxFetchAttempts,
			Error:    err.Error(),
		})
		return
	}

	if p.schema != nil {
		var raw any
		if err := json.Unmarshal(body, &raw); err != nil {
			loggingsystem.PayloadRejected(ctx, p.publisher, loggingsystem.PayloadRejectedPayload{URL: p.cfg.URL, Error: err.Error()})
			return
		}
		if err := p.schema.Validate(raw); err != nil {
			loggingsystem.PayloadRejected(ctx, p.publisher, loggingsystem.PayloadRejectedPayload{URL: p.cfg.URL, Error: err.Error()})
			return
		}
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		loggingsystem.PayloadRejected(ctx, p.publisher, loggingsystem.PayloadRejectedPayload{URL: p.cfg.URL, Error: err.Error()})
		return
	}

	for _, event := range page.Transactions {
		if ctx.Err() != nil {
			return
		}
		p.deliver(event)
	}
}

// deliver normalizes one event and hands it off unless it is stale or a
// duplicate. Exposed to tests through pollOnce; the handler sees each
// idempotency key at most once per seen-set window.
func (p *Poller) deliver(event Event) {
	event = event.Normalized()
	if event.Amount <= 0 || event.Wallet == "" && event.TeamID == "" {
		return
	}
	if event.TimestampMs < p.watermarkMs.Load() {
		return
	}
	if _, dup := p.seen[event.IdempotencyKey]; dup {
		return
	}
	p.remember(event.IdempotencyKey)
	p.handler(event)
}

func (p *Poller) remember(key string) {
	if len(p.seenOrder) >= p.cfg.MaxSeen {
		oldest := p.seenOrder[0]
		p.seenOrder = p.seenOrder[1:]
		delete(p.seen, oldest)
	}
	p.seen[key] = struct{}{}
	p.seenOrder = append(p.seenOrder, key)
}

func (p *Poller) fetch(ctx context.Context) ([]byte, error) {
	var lastErr error
	backoff := 250 * time.Millisecond
	for attempt := 0; attempt < maxFetchAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
		body, err := p.fetchOnce(ctx)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func (p *Poller) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	return body, nil
}
