package soc

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/Pjt727/soc/collection/services"
)

// Config describes one Schedule of Classes site and how hard to hit it.
type Config struct {
	School     string `yaml:"school"`
	ResultsURL string `yaml:"results_url"`

	// fixed search form values sent along with the term and subjects
	Form     map[string][]string `yaml:"form"`
	Subjects []string            `yaml:"subjects"`

	RequestsPerSecond    float64       `yaml:"requests_per_second"`
	Burst                int           `yaml:"burst"`
	MaxIncreasePerSecond float64       `yaml:"max_increase_per_second"`
	RequestRetryCount    int           `yaml:"request_retry_count"`
	RequestTimeout       time.Duration `yaml:"request_timeout"`
	PageWorkers          int           `yaml:"page_workers"`
	PageCacheTTL         time.Duration `yaml:"page_cache_ttl"`
}

func DefaultConfig() Config {
	return Config{
		School:     "ucsd",
		ResultsURL: "https://act.ucsd.edu/scheduleOfClasses/scheduleOfClassesStudentResult.htm",
		Form: map[string][]string{
			"loggedIn":       {"false"},
			"instructorType": {"begin"},
			"titleType":      {"contain"},
			"schDay":         {"M", "T", "W", "R", "F", "S"},
			"schedOption1":   {"true"},
			"schedOption2":   {"true"},
		},
		Subjects:             []string{"BILD", "CSE"},
		RequestsPerSecond:    4,
		Burst:                5,
		MaxIncreasePerSecond: 2,
		// the first request to a results page occasionally fails
		RequestRetryCount: 1,
		RequestTimeout:    30 * time.Second,
		PageWorkers:       4,
		PageCacheTTL:      10 * time.Minute,
	}
}

// LoadConfig reads a yaml file over the defaults, keys missing from the file
// keep their default value
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	file, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(file, &config); err != nil {
		return config, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func (c Config) Validate() error {
	var errs error
	if _, err := url.ParseRequestURI(c.ResultsURL); err != nil {
		errs = errors.Join(errs, fmt.Errorf("results_url: %w", err))
	}
	if c.RequestsPerSecond <= 0 {
		errs = errors.Join(errs, errors.New("requests_per_second must be positive"))
	}
	if c.Burst <= 0 {
		errs = errors.Join(errs, errors.New("burst must be positive"))
	}
	if c.RequestRetryCount < 0 {
		errs = errors.Join(errs, errors.New("request_retry_count cannot be negative"))
	}
	if c.PageWorkers <= 0 {
		errs = errors.Join(errs, errors.New("page_workers must be positive"))
	}
	return errs
}

func (c Config) rateLimiter() *services.AdaptiveRateLimiter {
	return services.NewAdaptiveRateLimiter(
		rate.Limit(c.RequestsPerSecond),
		c.Burst,
		rate.Limit(c.MaxIncreasePerSecond),
	)
}
