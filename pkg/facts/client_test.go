package facts_test

import (
	"context"
	"errors"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/factboard/pkg/fact"
	"github.com/papercomputeco/factboard/pkg/facts"
	testutils "github.com/papercomputeco/factboard/pkg/utils/test"
)

var _ = Describe("Client", func() {
	var (
		server *testutils.CollectionServer
		client *facts.Client
		ctx    context.Context
	)

	BeforeEach(func() {
		server = testutils.NewCollectionServer()
		DeferCleanup(server.Close)

		var err error
		client, err = facts.NewClient(facts.Config{BaseURL: server.URL})
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	Describe("NewClient", func() {
		It("requires a base URL", func() {
			_, err := facts.NewClient(facts.Config{})
			Expect(err).To(MatchError(facts.ErrNoTarget))
		})

		It("rejects non-http schemes", func() {
			_, err := facts.NewClient(facts.Config{BaseURL: "ftp://example.com"})
			Expect(err).To(MatchError(ContainSubstring("scheme")))
		})

		It("appends the collection path", func() {
			c, err := facts.NewClient(facts.Config{BaseURL: "https://example.com/"})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Endpoint()).To(Equal("https://example.com/facts"))
		})

		It("keeps a base path prefix", func() {
			c, err := facts.NewClient(facts.Config{BaseURL: "https://example.com/api"})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Endpoint()).To(Equal("https://example.com/api/facts"))
		})
	})

	Describe("List", func() {
		It("returns an empty, non-nil list for an empty collection", func() {
			list, err := client.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).NotTo(BeNil())
			Expect(list).To(BeEmpty())
		})

		It("returns facts in server order and ignores extra attributes", func() {
			server.Close()
			server = testutils.NewCollectionServer("first", "second", "third")
			c, err := facts.NewClient(facts.Config{BaseURL: server.URL})
			Expect(err).NotTo(HaveOccurred())

			list, err := c.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(Equal([]fact.Fact{{Text: "first"}, {Text: "second"}, {Text: "third"}}))
		})

		It("issues a GET on /facts", func() {
			_, err := client.List(ctx)
			Expect(err).NotTo(HaveOccurred())

			reqs := server.Requests()
			Expect(reqs).To(HaveLen(1))
			Expect(reqs[0].Method).To(Equal(http.MethodGet))
			Expect(reqs[0].Path).To(Equal("/facts"))
		})

		It("treats a null body as an empty list", func() {
			server.ServeListBody("null")
			list, err := client.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(BeEmpty())
		})

		It("returns a DecodeError for a malformed body", func() {
			server.ServeListBody(`{"text":"not an array"}`)
			_, err := client.List(ctx)

			var decodeErr *facts.DecodeError
			Expect(errors.As(err, &decodeErr)).To(BeTrue())
			Expect(decodeErr.URL).To(Equal(client.Endpoint()))
		})

		It("returns a StatusError for a non-2xx answer", func() {
			server.FailList(http.StatusServiceUnavailable)
			_, err := client.List(ctx)

			var statusErr *facts.StatusError
			Expect(errors.As(err, &statusErr)).To(BeTrue())
			Expect(statusErr.StatusCode).To(Equal(http.StatusServiceUnavailable))
			Expect(statusErr.Method).To(Equal(http.MethodGet))
			Expect(statusErr.Body).To(Equal("list unavailable"))
			Expect(facts.StatusCode(err)).To(Equal(http.StatusServiceUnavailable))
			Expect(facts.IsUnreachable(err)).To(BeFalse())
		})

		It("returns a RequestError when the collection is unreachable", func() {
			c, err := facts.NewClient(facts.Config{BaseURL: testutils.UnreachableURL()})
			Expect(err).NotTo(HaveOccurred())

			_, err = c.List(ctx)
			Expect(err).To(HaveOccurred())
			Expect(facts.IsUnreachable(err)).To(BeTrue())
			Expect(facts.StatusCode(err)).To(BeZero())
		})

		It("honors context cancellation", func() {
			canceled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := client.List(canceled)
			Expect(facts.IsUnreachable(err)).To(BeTrue())
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})
	})

	Describe("Create", func() {
		It("posts the text as JSON", func() {
			Expect(client.Create(ctx, "new fact")).To(Succeed())

			reqs := server.Requests()
			Expect(reqs).To(HaveLen(1))
			Expect(reqs[0].Method).To(Equal(http.MethodPost))
			Expect(reqs[0].Path).To(Equal("/facts"))
			Expect(reqs[0].ContentType).To(Equal("application/json"))
			Expect(reqs[0].Body).To(MatchJSON(`{"text":"new fact"}`))
			Expect(server.Facts()).To(Equal([]string{"new fact"}))
		})

		It("sends empty text without rejecting it", func() {
			Expect(client.Create(ctx, "")).To(Succeed())
			Expect(server.Requests()[0].Body).To(MatchJSON(`{"text":""}`))
		})

		It("sends special characters verbatim", func() {
			text := `<b>"quoted"</b> & 'single' ✓`
			Expect(client.Create(ctx, text)).To(Succeed())
			Expect(server.Facts()).To(Equal([]string{text}))
		})

		It("returns a StatusError when the collection rejects the fact", func() {
			server.FailCreate(http.StatusInternalServerError)
			err := client.Create(ctx, "rejected")
			Expect(facts.StatusCode(err)).To(Equal(http.StatusInternalServerError))
			Expect(server.Facts()).To(BeEmpty())
		})

		It("returns a RequestError when the collection is unreachable", func() {
			c, err := facts.NewClient(facts.Config{BaseURL: testutils.UnreachableURL(), Timeout: time.Second})
			Expect(err).NotTo(HaveOccurred())
			Expect(facts.IsUnreachable(c.Create(ctx, "lost"))).To(BeTrue())
		})
	})
})
