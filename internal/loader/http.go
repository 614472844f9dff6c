package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/angeloszaimis/bootconfig/internal/settings"
)

// HTTPLoader fetches the configuration document with a single GET request.
// A 404 is the expected development-mode case and resolves to the fallback
// patch; any other non-200 status, transport error, or decode error fails
// the load.
type HTTPLoader struct {
	client   *http.Client
	url      string
	fallback settings.Patch
	logger   *slog.Logger
}

// NewHTTPLoader creates a loader for the document at documentURL.
// The timeout bounds the single fetch attempt.
func NewHTTPLoader(documentURL string, timeout time.Duration, fallback settings.Patch, logger *slog.Logger) (*HTTPLoader, error) {
	parsed, err := url.Parse(documentURL)
	if err != nil {
		return nil, fmt.Errorf("parse document URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("document URL must use http or https scheme, got %q", parsed.Scheme)
	}

	if parsed.Host == "" {
		return nil, fmt.Errorf("document URL must have a host")
	}

	return &HTTPLoader{
		client:   &http.Client{Timeout: timeout},
		url:      documentURL,
		fallback: fallback,
		logger:   logger,
	}, nil
}

func (l *HTTPLoader) Name() string {
	return "http"
}

func (l *HTTPLoader) Load(ctx context.Context) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("build document request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := l.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("fetch configuration document: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		l.logger.Info("Configuration document not found, using fallback values",
			slog.String("url", l.url))
		return Result{Patch: l.fallback, Outcome: OutcomeFallback}, nil
	}

	if res.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("configuration endpoint returned status %d", res.StatusCode)
	}

	var doc document
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return Result{}, fmt.Errorf("decode configuration document: %w", err)
	}

	l.logger.Info("Loaded configuration document",
		slog.String("url", l.url))

	return Result{Patch: doc.patch(), Outcome: OutcomeDocument}, nil
}
