package fact_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/factboard/pkg/fact"
)

var _ = Describe("Fact", func() {
	It("ignores backend attributes when decoding", func() {
		var list []fact.Fact
		Expect(json.Unmarshal([]byte(`[{"id":7,"text":"abyss is real","created_at":"2024-01-01T00:00:00Z"}]`), &list)).To(Succeed())
		Expect(list).To(Equal([]fact.Fact{fact.New("abyss is real")}))
	})

	It("encodes only the text", func() {
		out, err := json.Marshal(fact.New("new fact"))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(MatchJSON(`{"text":"new fact"}`))
	})

	It("extracts texts in order", func() {
		Expect(fact.Texts([]fact.Fact{fact.New("x"), fact.New("y")})).To(Equal([]string{"x", "y"}))
		Expect(fact.Texts(nil)).To(BeEmpty())
	})
})
