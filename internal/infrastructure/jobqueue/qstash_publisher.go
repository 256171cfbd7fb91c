// Package jobqueue publishes deferred jobs through Upstash QStash. QStash
// calls the service back on its internal job routes, so every published job
// forwards the internal job token.
package jobqueue

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/nbanima/pickem/internal/domain/slate"
	"github.com/nbanima/pickem/internal/platform/resilience"
)

var errQStashTransient = crerr.New("qstash transient failure")

type QStashPublisherConfig struct {
	BaseURL          string
	Token            string
	TargetBaseURL    string
	Retries          int
	InternalJobToken string
	Timeout          time.Duration
	SettleDelay      time.Duration
	CircuitBreaker   resilience.CircuitBreakerConfig
}

type QStashPublisher struct {
	client           *http.Client
	baseURL          string
	token            string
	targetBaseURL    string
	retries          int
	internalJobToken string
	settleDelay      time.Duration
	logger           *slog.Logger
	breaker          *resilience.CircuitBreaker
	circuitEnabled   bool
}

func NewQStashPublisher(cfg QStashPublisherConfig, logger *slog.Logger) *QStashPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &QStashPublisher{
		client:           &http.Client{Timeout: timeout},
		baseURL:          strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:            strings.TrimSpace(cfg.Token),
		targetBaseURL:    strings.TrimRight(strings.TrimSpace(cfg.TargetBaseURL), "/"),
		retries:          cfg.Retries,
		internalJobToken: strings.TrimSpace(cfg.InternalJobToken),
		settleDelay:      cfg.SettleDelay,
		logger:           logger,
		breaker:          resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled:   breakerCfg.Enabled,
	}
}

// EnqueueSettlement publishes a settle job for the slate. The slate date is
// the deduplication id, so however many times ingestion fires for one slate,
// QStash delivers a single settlement callback.
func (p *QStashPublisher) EnqueueSettlement(ctx context.Context, date slate.Date) error {
	payload := map[string]string{"slate_date": string(date)}
	return p.enqueue(ctx, "/v1/internal/jobs/settle", payload, p.settleDelay, "settle-"+string(date))
}

func (p *QStashPublisher) enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error {
	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "qstash circuit breaker rejected request", "state", string(p.breaker.State()))
			return fmt.Errorf("qstash is temporarily unavailable: %w", err)
		}
	}

	baseURL, err := validateHTTPBaseURL(p.baseURL)
	if err != nil {
		return crerr.Wrap(err, "invalid QSTASH_BASE_URL")
	}
	targetBaseURL, err := validateHTTPBaseURL(p.targetBaseURL)
	if err != nil {
		return crerr.Wrap(err, "invalid QSTASH_TARGET_BASE_URL")
	}

	targetURL := targetBaseURL + path
	publishURL := baseURL + "/v2/publish/" + targetURL

	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "marshal job payload")
	}
	if _, err := body.Write(raw); err != nil {
		return crerr.Wrap(err, "buffer job payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, publishURL, strings.NewReader(body.String()))
	if err != nil {
		return crerr.Wrap(err, "create qstash request")
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Upstash-Method", http.MethodPost)
	if p.retries > 0 {
		req.Header.Set("Upstash-Retries", strconv.Itoa(p.retries))
	}
	if delay > 0 {
		req.Header.Set("Upstash-Delay", normalizeDelay(delay))
	}
	if deduplicationID != "" {
		req.Header.Set("Upstash-Deduplication-Id", deduplicationID)
	}
	if p.internalJobToken != "" {
		req.Header.Set("Upstash-Forward-X-Internal-Job-Token", p.internalJobToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: publish job target_url=%s: %v", errQStashTransient, targetURL, err)
		p.recordCircuitResult(callErr)
		return callErr
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if isRetryableStatus(resp.StatusCode) {
			callErr := fmt.Errorf("%w: publish job status=%d target_url=%s body=%s",
				errQStashTransient, resp.StatusCode, targetURL, strings.TrimSpace(string(respBody)))
			p.recordCircuitResult(callErr)
			return callErr
		}
		callErr := fmt.Errorf("publish job status=%d target_url=%s body=%s",
			resp.StatusCode, targetURL, strings.TrimSpace(string(respBody)))
		p.recordCircuitResult(callErr)
		return callErr
	}

	p.logger.InfoContext(ctx, "job published",
		"path", path, "delay", normalizeDelay(delay), "deduplication_id", deduplicationID)
	p.recordCircuitResult(nil)
	return nil
}

func (p *QStashPublisher) recordCircuitResult(err error) {
	if !p.circuitEnabled {
		return
	}
	if err != nil && stderrors.Is(err, errQStashTransient) {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func normalizeDelay(delay time.Duration) string {
	if delay <= 0 {
		return "0s"
	}
	return fmt.Sprintf("%ds", int(delay.Round(time.Second).Seconds()))
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme %q", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}
	return strings.TrimRight(candidate, "/"), nil
}
