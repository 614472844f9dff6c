package healthcheck_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/bootconfig/internal/healthcheck"
	"github.com/angeloszaimis/bootconfig/internal/upstream"
)

func TestHealthcheck(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Healthcheck Suite")
}

func mustParseURL(rawURL string) *url.URL {
	u, err := url.Parse(rawURL)
	if err != nil {
		panic(err)
	}
	return u
}

var _ = Describe("HealthCheck", func() {
	var (
		up         *upstream.Upstream
		mockOrigin *httptest.Server
		healthy    atomic.Bool
		log        *slog.Logger
	)

	BeforeEach(func() {
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
		healthy.Store(true)

		mockOrigin = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" && healthy.Load() {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("OK"))
				return
			}
			w.WriteHeader(http.StatusServiceUnavailable)
		}))

		up = upstream.New(mustParseURL(mockOrigin.URL))
		up.SetHealthy(false)
	})

	AfterEach(func() {
		mockOrigin.Close()
	})

	It("should mark a healthy upstream as healthy", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go healthcheck.HealthCheck(ctx, up, "/health", 50*time.Millisecond, log, nil)

		Eventually(up.IsHealthy, "1s", "20ms").Should(BeTrue())
	})

	It("should mark a failing upstream as unhealthy", func() {
		up.SetHealthy(true)
		healthy.Store(false)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go healthcheck.HealthCheck(ctx, up, "/health", 50*time.Millisecond, log, nil)

		Eventually(up.IsHealthy, "1s", "20ms").Should(BeFalse())
	})

	It("should mark an unreachable upstream as unhealthy", func() {
		up.SetHealthy(true)
		mockOrigin.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go healthcheck.HealthCheck(ctx, up, "/health", 50*time.Millisecond, log, nil)

		Eventually(up.IsHealthy, "1s", "20ms").Should(BeFalse())
	})

	It("should stop when context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())

		go healthcheck.HealthCheck(ctx, up, "/health", 50*time.Millisecond, log, nil)

		time.Sleep(100 * time.Millisecond)
		cancel()
		time.Sleep(100 * time.Millisecond)

		// Should not panic
	})
})
