package board_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/factboard/pkg/board"
)

var _ = Describe("Surfaces", func() {
	It("replaces buffer content wholesale", func() {
		buf := board.NewBuffer()
		buf.Replace("first")
		buf.Replace("second")
		Expect(buf.String()).To(Equal("second"))
		Expect(buf.Renders()).To(Equal(2))
	})

	It("sets and clears a field", func() {
		f := board.NewField("typed")
		Expect(f.Value()).To(Equal("typed"))
		f.Clear()
		Expect(f.Value()).To(BeEmpty())
	})

	It("is safe for concurrent use", func() {
		buf := board.NewBuffer()
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				buf.Replace("x")
				_ = buf.String()
			}()
		}
		wg.Wait()
		Expect(buf.Renders()).To(Equal(50))
	})
})
