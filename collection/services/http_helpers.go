package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// the schedule site answers slowly under load, so one bad response cuts the
// rate to a fifth while a good one only earns back a fifth of the current rate
const (
	backoffScale = 0.2
	recoverScale = 1.2
	floorRate    = rate.Limit(1)
)

// AdaptiveRateLimiter paces requests, backing off when the site returns an
// error status and creeping back up while it answers normally.
type AdaptiveRateLimiter struct {
	mu       sync.Mutex
	current  rate.Limit
	maxStep  rate.Limit
	interval *rate.Limiter
}

func NewAdaptiveRateLimiter(perSecond rate.Limit, burst int, maxStep rate.Limit) *AdaptiveRateLimiter {
	return &AdaptiveRateLimiter{
		current:  perSecond,
		maxStep:  maxStep,
		interval: rate.NewLimiter(perSecond, burst),
	}
}

func (a *AdaptiveRateLimiter) Wait(ctx context.Context) error {
	return a.interval.Wait(ctx)
}

func (a *AdaptiveRateLimiter) Fail() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.adjust(max(a.current*backoffScale, floorRate))
}

func (a *AdaptiveRateLimiter) Succeed() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.adjust(min(a.current*recoverScale, a.current+a.maxStep))
}

// caller holds mu
func (a *AdaptiveRateLimiter) adjust(to rate.Limit) {
	a.current = to
	a.interval.SetLimit(to)
}

type RateLimiter interface {
	Wait(context.Context) error
	Succeed()
	Fail()
}

// roundTripFunc lets the transport wrappers below be plain closures
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func transportOf(client *http.Client) http.RoundTripper {
	if client.Transport == nil {
		return http.DefaultTransport
	}
	return client.Transport
}

// AddRateLimiter makes every request of the client wait on the limiter and
// reports the outcome back to it. A status of 400 or above counts as a failure.
func AddRateLimiter(client *http.Client, limiter RateLimiter) {
	next := transportOf(client)
	client.Transport = roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if err := limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
		resp, err := next.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusBadRequest {
			limiter.Fail()
		} else {
			limiter.Succeed()
		}
		return resp, nil
	})
}

// AddHttpReporting logs each request and its response at LevelHttpReport.
// Results pages are fetched in parallel, the numbered id pairs the two lines.
func AddHttpReporting(client *http.Client, logger *slog.Logger) {
	next := transportOf(client)
	var sent atomic.Int32
	client.Transport = roundTripFunc(func(req *http.Request) (*http.Response, error) {
		ctx := req.Context()
		if !logger.Enabled(ctx, LevelHttpReport.Level()) {
			return next.RoundTrip(req)
		}
		id := sent.Add(1)
		target := req.URL.String()
		logger.Log(ctx, LevelHttpReport, "sending request", "id", id, "method", req.Method, "url", target)
		resp, err := next.RoundTrip(req)
		if err != nil {
			logger.Log(ctx, LevelHttpReport, "request failed", "id", id, "url", target, "error", err)
			return nil, err
		}
		logger.Log(ctx, LevelHttpReport, "got response", "id", id, "url", target, "status", resp.StatusCode)
		return resp, nil
	})
}

// RespOrStatusErr turns a transport error or a non 2xx status into an
// ErrTemporaryNetworkFailure.
func RespOrStatusErr(r *http.Response, respErr error) error {
	if respErr != nil {
		return errors.Join(ErrTemporaryNetworkFailure, respErr)
	}
	if r.StatusCode < 200 || r.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrTemporaryNetworkFailure, r.StatusCode)
	}
	return nil
}

// NewRetryClient returns a client that keeps cookies and retries a failed
// request retryCount times. Every attempt passes through the limiter and the
// http reporting.
func NewRetryClient(
	entry *log.Entry,
	logger *slog.Logger,
	limiter RateLimiter,
	retryCount int,
	timeout time.Duration,
) *http.Client {
	inner := &http.Client{Timeout: timeout}
	if limiter != nil {
		AddRateLimiter(inner, limiter)
	}
	AddHttpReporting(inner, logger)

	client := retryablehttp.NewClient()
	client.HTTPClient = inner
	client.RetryMax = retryCount
	client.RetryWaitMin = 250 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.Logger = LogrusLogger{Entry: entry}
	client.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			entry.Warnf("retry %d of %d for %s %s", attempt, retryCount, req.Method, req.URL)
		}
	}

	stdClient := client.StandardClient()
	jar, _ := cookiejar.New(nil)
	stdClient.Jar = jar
	return stdClient
}

// LogrusLogger adapts a logrus entry to retryablehttp's LeveledLogger.
type LogrusLogger struct {
	Entry *log.Entry
}

func (l LogrusLogger) fields(keysAndValues []any) *log.Entry {
	fields := log.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.Entry.WithFields(fields)
}

func (l LogrusLogger) Error(msg string, keysAndValues ...any) {
	l.fields(keysAndValues).Error(msg)
}

func (l LogrusLogger) Warn(msg string, keysAndValues ...any) {
	l.fields(keysAndValues).Warn(msg)
}

func (l LogrusLogger) Info(msg string, keysAndValues ...any) {
	l.fields(keysAndValues).Info(msg)
}

func (l LogrusLogger) Debug(msg string, keysAndValues ...any) {
	l.fields(keysAndValues).Debug(msg)
}
