package utils

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Truncate", func() {
	It("leaves short strings alone", func() {
		Expect(Truncate("abyss", 10)).To(Equal("abyss"))
		Expect(Truncate("abyss", 5)).To(Equal("abyss"))
	})

	It("cuts long strings and marks the cut", func() {
		Expect(Truncate("abyss is real", 5)).To(Equal("abyss..."))
	})

	It("counts runes rather than bytes", func() {
		Expect(Truncate("héllo wörld", 5)).To(Equal("héllo..."))
	})

	It("treats a negative limit as unlimited", func() {
		Expect(Truncate("anything", -1)).To(Equal("anything"))
	})
})
