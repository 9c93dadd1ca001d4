package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/factboard/pkg/logger"
)

func decodeLine(buf *bytes.Buffer) map[string]any {
	var parsed map[string]any
	ExpectWithOffset(1, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &parsed)).To(Succeed())
	return parsed
}

var _ = Describe("New", func() {
	It("writes text records with attributes", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf))
		l.Info("listed facts", "count", 3)

		Expect(buf.String()).To(ContainSubstring("listed facts"))
		Expect(buf.String()).To(ContainSubstring("count=3"))
	})

	It("drops debug records by default", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf))
		l.Debug("hidden")

		Expect(buf.String()).To(BeEmpty())
	})

	It("keeps debug records with WithDebug", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf), logger.WithDebug(true))
		l.Debug("visible")

		Expect(buf.String()).To(ContainSubstring("visible"))
	})

	It("emits JSON when asked", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf), logger.WithJSON(true))
		l.Info("submitted", "target", "http://localhost:3000")

		parsed := decodeLine(&buf)
		Expect(parsed["msg"]).To(Equal("submitted"))
		Expect(parsed["target"]).To(Equal("http://localhost:3000"))
	})

	It("prefers JSON over pretty output", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf), logger.WithPretty(true), logger.WithJSON(true))
		l.Info("structured")

		parsed := decodeLine(&buf)
		Expect(parsed["msg"]).To(Equal("structured"))
	})

	It("renders pretty output through charmbracelet/log", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf), logger.WithPretty(true))
		l.Info("board ready", "facts", 2)

		Expect(buf.String()).To(ContainSubstring("board ready"))
		Expect(buf.String()).To(ContainSubstring("facts"))
	})

	It("writes to every writer", func() {
		var a, b bytes.Buffer
		l := logger.New(logger.WithWriters(&a, &b))
		l.Warn("twice")

		Expect(a.String()).To(ContainSubstring("twice"))
		Expect(b.String()).To(ContainSubstring("twice"))
	})

	It("includes the source location with WithSource", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf), logger.WithJSON(true), logger.WithSource(true))
		l.Info("located")

		Expect(decodeLine(&buf)).To(HaveKey(slog.SourceKey))
	})
})

var _ = Describe("Nop", func() {
	It("is disabled at every level", func() {
		l := logger.Nop()
		Expect(l.Enabled(context.Background(), slog.LevelError)).To(BeFalse())
		Expect(func() {
			l.With("k", "v").WithGroup("g").Error("ignored")
		}).NotTo(Panic())
	})
})

var _ = Describe("Multi", func() {
	It("fans records out to each logger", func() {
		var text, js bytes.Buffer
		l := logger.Multi(
			logger.New(logger.WithWriter(&text)),
			logger.New(logger.WithWriter(&js), logger.WithJSON(true)),
		)
		l.Info("fanned", "n", 1)

		Expect(text.String()).To(ContainSubstring("fanned"))
		Expect(decodeLine(&js)["msg"]).To(Equal("fanned"))
	})

	It("respects each logger's level", func() {
		var quiet, loud bytes.Buffer
		l := logger.Multi(
			logger.New(logger.WithWriter(&quiet)),
			logger.New(logger.WithWriter(&loud), logger.WithDebug(true)),
		)
		l.Debug("detail")

		Expect(quiet.String()).To(BeEmpty())
		Expect(loud.String()).To(ContainSubstring("detail"))
	})

	It("carries With and WithGroup to every handler", func() {
		var buf bytes.Buffer
		l := logger.Multi(logger.New(logger.WithWriter(&buf), logger.WithJSON(true)))
		l.With("component", "widget").WithGroup("request").Info("served", "path", "/")

		parsed := decodeLine(&buf)
		Expect(parsed["component"]).To(Equal("widget"))
		group, ok := parsed["request"].(map[string]any)
		Expect(ok).To(BeTrue())
		Expect(group["path"]).To(Equal("/"))
	})

	It("skips nil loggers", func() {
		var buf bytes.Buffer
		l := logger.Multi(nil, logger.New(logger.WithWriter(&buf)))
		l.Info("still works")

		Expect(buf.String()).To(ContainSubstring("still works"))
	})
})
