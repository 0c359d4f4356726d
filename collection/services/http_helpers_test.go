package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/time/rate"
)

func TestAdaptiveRateLimiterBounds(t *testing.T) {
	limiter := NewAdaptiveRateLimiter(10, 1, 1)

	limiter.Fail()
	if limiter.current != 2 {
		t.Errorf("after one failure rate = %v, want 2", limiter.current)
	}
	limiter.Fail()
	if limiter.current != floorRate {
		t.Errorf("rate should not drop under %v, got %v", floorRate, limiter.current)
	}

	limiter.Succeed()
	if limiter.current != 1.2 {
		t.Errorf("after a success rate = %v, want 1.2", limiter.current)
	}

	fast := NewAdaptiveRateLimiter(100, 1, rate.Limit(5))
	fast.Succeed()
	if fast.current != 105 {
		t.Errorf("step should be capped at 5, got rate %v", fast.current)
	}
}

func TestRespOrStatusErr(t *testing.T) {
	if err := RespOrStatusErr(&http.Response{StatusCode: http.StatusOK}, nil); err != nil {
		t.Errorf("200 should not be an error, got %v", err)
	}
	if err := RespOrStatusErr(&http.Response{StatusCode: http.StatusBadGateway}, nil); !errors.Is(err, ErrTemporaryNetworkFailure) {
		t.Errorf("502 should be a temporary failure, got %v", err)
	}
	if err := RespOrStatusErr(nil, io.ErrUnexpectedEOF); !errors.Is(err, io.ErrUnexpectedEOF) || !errors.Is(err, ErrTemporaryNetworkFailure) {
		t.Errorf("transport error should be kept and wrapped, got %v", err)
	}
}

func TestRetryClientWarnsOnRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, "ok")
	}))
	t.Cleanup(server.Close)

	logger, hook := test.NewNullLogger()
	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewRetryClient(log.NewEntry(logger), slogger, NewAdaptiveRateLimiter(1000, 10, 10), 1, 5*time.Second)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := client.Do(req)
	if err := RespOrStatusErr(resp, err); err != nil {
		t.Fatalf("request should succeed on the retry: %v", err)
	}
	resp.Body.Close()

	if got := calls.Load(); got != 2 {
		t.Errorf("server saw %d requests, want 2", got)
	}
	var warnings []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.WarnLevel {
			warnings = append(warnings, entry.Message)
		}
	}
	if len(warnings) != 1 || !strings.HasPrefix(warnings[0], "retry 1 of 1 for GET") {
		t.Errorf("expected one retry warning, got %q", warnings)
	}
}

func TestRetryClientKeepsCookies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("session"); err != nil {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "1", Path: "/"})
			io.WriteString(w, "new")
			return
		}
		io.WriteString(w, "known")
	}))
	t.Cleanup(server.Close)

	logger, _ := test.NewNullLogger()
	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewRetryClient(log.NewEntry(logger), slogger, nil, 0, 5*time.Second)

	var bodies []string
	for range 2 {
		resp, err := client.Get(server.URL)
		if err := RespOrStatusErr(resp, err); err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		bodies = append(bodies, string(body))
	}
	if bodies[0] != "new" || bodies[1] != "known" {
		t.Errorf("session cookie was not kept, bodies %q", bodies)
	}
}
