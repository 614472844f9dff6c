package upstream_test

import (
	"net/url"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/bootconfig/internal/upstream"
)

func TestUpstream(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Upstream Suite")
}

func mustParseURL(rawURL string) *url.URL {
	u, err := url.Parse(rawURL)
	if err != nil {
		panic(err)
	}
	return u
}

var _ = Describe("Upstream", func() {
	var up *upstream.Upstream

	BeforeEach(func() {
		up = upstream.New(mustParseURL("http://localhost:8080/api"))
	})

	Describe("New", func() {
		It("should start in a healthy state", func() {
			Expect(up.IsHealthy()).To(BeTrue())
		})

		It("should expose the origin URL", func() {
			Expect(up.URL().String()).To(Equal("http://localhost:8080/api"))
		})

		It("should create a reverse proxy", func() {
			Expect(up.ReverseProxy()).NotTo(BeNil())
		})
	})

	Describe("SetHealthy", func() {
		It("should report a change when the status flips", func() {
			Expect(up.SetHealthy(false)).To(BeTrue())
			Expect(up.IsHealthy()).To(BeFalse())
		})

		It("should report no change when the status is unchanged", func() {
			Expect(up.SetHealthy(true)).To(BeFalse())
		})
	})

	Describe("RecordResponse", func() {
		It("should return zero before any response", func() {
			Expect(up.EWMATime()).To(Equal(time.Duration(0)))
		})

		It("should seed the EWMA with the first response", func() {
			up.RecordResponse(100 * time.Millisecond)
			Expect(up.EWMATime()).To(Equal(100 * time.Millisecond))
		})

		It("should weight subsequent responses", func() {
			up.RecordResponse(100 * time.Millisecond)
			up.RecordResponse(200 * time.Millisecond)

			// 0.8*100ms + 0.2*200ms = 120ms
			Expect(up.EWMATime()).To(BeNumerically("~", 120*time.Millisecond, float64(time.Millisecond)))
		})
	})
})
