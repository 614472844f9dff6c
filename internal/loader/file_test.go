package loader_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/bootconfig/internal/loader"
	"github.com/angeloszaimis/bootconfig/internal/settings"
)

var _ = Describe("FileLoader", func() {
	var (
		log      *slog.Logger
		fallback settings.Patch
		tempDir  string
		ctx      context.Context
	)

	BeforeEach(func() {
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
		fallback = settings.Patch{BaseURL: strPtr("http://localhost:8080/api")}
		ctx = context.Background()

		var err error
		tempDir, err = os.MkdirTemp("", "loader-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	Describe("Load", func() {
		It("should resolve with the document's fields", func() {
			path := filepath.Join(tempDir, "config.json")
			err := os.WriteFile(path, []byte(`{"baseUrl": "https://example.com/api"}`), 0644)
			Expect(err).NotTo(HaveOccurred())

			l := loader.NewFileLoader(path, fallback, log)
			Expect(l.Name()).To(Equal("file"))

			res, err := l.Load(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(loader.OutcomeDocument))
			Expect(res.Patch.Apply(settings.Settings{}).BaseURL).To(Equal("https://example.com/api"))
		})

		It("should resolve with the fallback when the file is missing", func() {
			l := loader.NewFileLoader(filepath.Join(tempDir, "missing.json"), fallback, log)

			res, err := l.Load(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(loader.OutcomeFallback))
			Expect(res.Patch.Apply(settings.Settings{}).BaseURL).To(Equal("http://localhost:8080/api"))
		})

		It("should fail on a malformed document", func() {
			path := filepath.Join(tempDir, "config.json")
			err := os.WriteFile(path, []byte(`not json`), 0644)
			Expect(err).NotTo(HaveOccurred())

			l := loader.NewFileLoader(path, fallback, log)

			res, err := l.Load(ctx)
			Expect(err).To(HaveOccurred())
			Expect(res.Patch.IsZero()).To(BeTrue())
		})

		It("should fail when the path is a directory", func() {
			l := loader.NewFileLoader(tempDir, fallback, log)

			_, err := l.Load(ctx)
			Expect(err).To(HaveOccurred())
		})

		It("should respect an already-cancelled context", func() {
			path := filepath.Join(tempDir, "config.json")
			err := os.WriteFile(path, []byte(`{"baseUrl": "https://example.com/api"}`), 0644)
			Expect(err).NotTo(HaveOccurred())

			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			l := loader.NewFileLoader(path, fallback, log)
			_, err = l.Load(cancelled)
			Expect(err).To(HaveOccurred())
		})
	})
})
