package logger_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rosterguard/roster-guardian/pkg/logger"
)

func TestLogger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Logger Suite")
}

var _ = Describe("Logger", func() {
	Describe("Init", func() {
		AfterEach(func() {
			os.Unsetenv("LOG_LEVEL")
		})

		It("should default production to info level", func() {
			logger.Init("production")
			l := logger.LoggerWrapper()
			Expect(l.Enabled(context.Background(), slog.LevelInfo)).To(BeTrue())
			Expect(l.Enabled(context.Background(), slog.LevelDebug)).To(BeFalse())
		})

		It("should default development to debug level", func() {
			logger.Init("development")
			Expect(logger.LoggerWrapper().Enabled(context.Background(), slog.LevelDebug)).To(BeTrue())
		})

		It("should honor a LOG_LEVEL override", func() {
			os.Setenv("LOG_LEVEL", "error")
			logger.Init("development")
			l := logger.LoggerWrapper()
			Expect(l.Enabled(context.Background(), slog.LevelWarn)).To(BeFalse())
			Expect(l.Enabled(context.Background(), slog.LevelError)).To(BeTrue())
		})
	})

	Describe("LoggerWrapper", func() {
		It("should never return nil", func() {
			Expect(logger.LoggerWrapper()).NotTo(BeNil())
		})
	})

	Describe("Context round-trip", func() {
		It("should return the stored logger from a derived context", func() {
			ctx := logger.With(context.Background(), "traceID", "abc-123")
			Expect(logger.From(ctx)).NotTo(BeNil())
			Expect(logger.From(ctx)).NotTo(BeIdenticalTo(logger.LoggerWrapper()))
		})

		It("should fall back to the shared logger for a bare context", func() {
			Expect(logger.From(context.Background())).To(BeIdenticalTo(logger.LoggerWrapper()))
		})
	})
})
