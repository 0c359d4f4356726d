package soc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"

	"github.com/Pjt727/soc/collection/services"
)

var pageCount = regexp.MustCompile(`of&nbsp;([0-9]*)`)

// Fetcher holds the search session for one site. Setup must be called before
// FetchPage; pages may then be fetched concurrently.
type Fetcher struct {
	config Config
	logger *slog.Logger
	client *http.Client
	pages  *cache.Cache

	mu   sync.RWMutex
	term string
}

func NewFetcher(config Config, logger *slog.Logger, entry *log.Entry) *Fetcher {
	logger = logger.With(slog.String("school", config.School))
	return &Fetcher{
		config: config,
		logger: logger,
		client: services.NewRetryClient(
			entry.WithField("school", config.School),
			logger,
			config.rateLimiter(),
			config.RequestRetryCount,
			config.RequestTimeout,
		),
		pages: cache.New(config.PageCacheTTL, 2*config.PageCacheTTL),
	}
}

// Setup starts a fresh session, submits the search form for the term and
// subjects, and returns how many result pages the search produced.
func (f *Fetcher) Setup(ctx context.Context, term string, subjects []string) (int, error) {
	logger := f.logger.With(slog.String("term", term))
	jar, _ := cookiejar.New(nil)
	f.client.Jar = jar
	// cached pages belong to the previous session's search
	f.pages.Flush()
	f.mu.Lock()
	f.term = ""
	f.mu.Unlock()

	form := url.Values{}
	for key, values := range f.config.Form {
		form[key] = append([]string(nil), values...)
	}
	form.Set("selectedTerm", term)
	form["selectedSubjects"] = subjects

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		f.config.ResultsURL,
		bytes.NewBufferString(form.Encode()),
	)
	if err != nil {
		logger.Error("Error creating search request", "error", err)
		return 0, errors.Join(services.ErrIncorrectAssumption, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.Do(req)
	err = services.RespOrStatusErr(resp, err)
	if err != nil {
		logger.Error("Error submitting search", "error", err)
		return 0, err
	}
	defer resp.Body.Close()
	body, err := readUTF8(resp)
	if err != nil {
		return 0, err
	}

	match := pageCount.FindSubmatch(body)
	if match == nil {
		logger.Error("search response has no page count")
		return 0, fmt.Errorf("%w: search response has no page count", services.ErrIncorrectAssumption)
	}
	pages, err := strconv.Atoi(string(match[1]))
	if err != nil {
		return 0, fmt.Errorf("%w: page count %q: %w", services.ErrIncorrectAssumption, match[1], err)
	}

	f.mu.Lock()
	f.term = term
	f.mu.Unlock()
	logger.Info("search submitted", "pages", pages, "subjects", len(subjects))
	return pages, nil
}

func (f *Fetcher) pageURL(page int) string {
	u, _ := url.Parse(f.config.ResultsURL)
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	u.RawQuery = query.Encode()
	return u.String()
}

// FetchPage returns the raw html of a results page (1-based).
func (f *Fetcher) FetchPage(ctx context.Context, page int) ([]byte, error) {
	f.mu.RLock()
	term := f.term
	f.mu.RUnlock()
	if term == "" {
		return nil, fmt.Errorf("%w: FetchPage called before Setup", services.ErrIncorrectAssumption)
	}

	pageURL := f.pageURL(page)
	if cached, ok := f.pages.Get(pageURL); ok {
		return cached.([]byte), nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, errors.Join(services.ErrIncorrectAssumption, err)
	}
	resp, err := f.client.Do(req)
	err = services.RespOrStatusErr(resp, err)
	if err != nil {
		f.logger.Error("Error getting results page", "page", page, "error", err)
		return nil, err
	}
	defer resp.Body.Close()
	body, err := readUTF8(resp)
	if err != nil {
		return nil, err
	}

	f.pages.SetDefault(pageURL, body)
	return body, nil
}

// ListTerms returns the term codes in the site's drop down whose two digit
// year is the current or next year. The first entry is the site's default.
func (f *Fetcher) ListTerms(ctx context.Context, now time.Time) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", f.config.ResultsURL, nil)
	if err != nil {
		return nil, errors.Join(services.ErrIncorrectAssumption, err)
	}
	resp, err := f.client.Do(req)
	err = services.RespOrStatusErr(resp, err)
	if err != nil {
		f.logger.Error("Error getting term list", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readUTF8(resp)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Join(services.ErrIncorrectAssumption, err)
	}
	return TermOptions(doc, now), nil
}

// readUTF8 decodes the body using the charset of the response, the site is
// not always served as utf-8
func readUTF8(resp *http.Response) ([]byte, error) {
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, errors.Join(services.ErrIncorrectAssumption, err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Join(services.ErrTemporaryNetworkFailure, err)
	}
	return body, nil
}

func TermOptions(doc *goquery.Document, now time.Time) []string {
	validYears := map[string]bool{
		fmt.Sprintf("%02d", now.Year()%100):     true,
		fmt.Sprintf("%02d", (now.Year()+1)%100): true,
	}
	var terms []string
	doc.Find("option").Each(func(_ int, option *goquery.Selection) {
		value := strings.TrimSpace(option.AttrOr("value", ""))
		if len(value) > 2 && validYears[value[2:]] {
			terms = append(terms, value)
		}
	})
	return terms
}
