package cliui_test

import (
	"bytes"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/factboard/pkg/cliui"
)

var _ = Describe("Step", func() {
	It("returns the error of fn and marks the step as failed", func() {
		var buf bytes.Buffer
		boom := errors.New("boom")

		err := cliui.Step(&buf, "Submitting fact", func() error { return boom })
		Expect(err).To(MatchError(boom))
		Expect(buf.String()).To(ContainSubstring("Submitting fact"))
		Expect(buf.String()).To(ContainSubstring("✗"))
		Expect(buf.String()).NotTo(ContainSubstring("✓"))
		Expect(buf.String()).To(HaveSuffix("\n"))
	})

	It("marks a successful step", func() {
		var buf bytes.Buffer

		Expect(cliui.Step(&buf, "Loading facts", func() error { return nil })).To(Succeed())
		Expect(buf.String()).To(ContainSubstring(cliui.SuccessMark))
	})

	It("reports short steps in milliseconds", func() {
		var buf bytes.Buffer

		Expect(cliui.Step(&buf, "Loading facts", func() error {
			time.Sleep(5 * time.Millisecond)
			return nil
		})).To(Succeed())
		Expect(buf.String()).To(MatchRegexp(`\(\d+ms\)`))
	})

	It("reports long steps in seconds", func() {
		var buf bytes.Buffer

		Expect(cliui.Step(&buf, "Loading facts", func() error {
			time.Sleep(1100 * time.Millisecond)
			return nil
		})).To(Succeed())
		Expect(buf.String()).To(MatchRegexp(`\(1\.\ds\)`))
	})
})
