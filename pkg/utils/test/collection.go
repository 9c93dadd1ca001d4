// Package test provides fakes shared by factboard tests.
package test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/papercomputeco/factboard/pkg/fact"
)

// RecordedRequest is one request seen by a CollectionServer.
type RecordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        string
}

// storedFact mimics what a real backend returns: the text plus attributes the
// client is expected to ignore.
type storedFact struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CollectionServer is an httptest server speaking the facts collection
// protocol. It appends on POST and lists in insertion order on GET.
type CollectionServer struct {
	*httptest.Server

	mu           sync.Mutex
	facts        []storedFact
	requests     []RecordedRequest
	listStatus   int
	createStatus int
	listBody     string
}

// NewCollectionServer starts a server seeded with texts.
func NewCollectionServer(texts ...string) *CollectionServer {
	s := &CollectionServer{}
	for _, t := range texts {
		s.append(t)
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Facts returns the stored texts in order.
func (s *CollectionServer) Facts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.facts))
	for i, f := range s.facts {
		out[i] = f.Text
	}
	return out
}

// Requests returns every request received so far.
func (s *CollectionServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]RecordedRequest(nil), s.requests...)
}

// Count returns how many requests with method were received.
func (s *CollectionServer) Count(method string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method {
			n++
		}
	}
	return n
}

// FailList makes GET answer with status (0 restores normal behavior).
func (s *CollectionServer) FailList(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listStatus = status
}

// FailCreate makes POST answer with status without storing (0 restores).
func (s *CollectionServer) FailCreate(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.createStatus = status
}

// ServeListBody makes GET answer 200 with body verbatim ("" restores).
func (s *CollectionServer) ServeListBody(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listBody = body
}

func (s *CollectionServer) append(text string) {
	s.facts = append(s.facts, storedFact{
		ID:        len(s.facts) + 1,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *CollectionServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, RecordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		Body:        string(body),
	})

	if r.URL.Path != "/facts" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		if s.listStatus != 0 {
			http.Error(w, "list unavailable", s.listStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if s.listBody != "" {
			_, _ = io.WriteString(w, s.listBody)
			return
		}
		list := s.facts
		if list == nil {
			list = []storedFact{}
		}
		_ = json.NewEncoder(w).Encode(list)

	case http.MethodPost:
		if s.createStatus != 0 {
			http.Error(w, "create rejected", s.createStatus)
			return
		}
		var in struct {
			Text *string `json:"text"`
		}
		if err := json.Unmarshal(body, &in); err != nil || in.Text == nil {
			http.Error(w, "bad fact", http.StatusBadRequest)
			return
		}
		s.append(*in.Text)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(s.facts[len(s.facts)-1])

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// UnreachableURL returns the base URL of a server that has already been shut
// down, so every request to it fails to connect.
func UnreachableURL() string {
	s := httptest.NewServer(http.NotFoundHandler())
	url := s.URL
	s.Close()
	return url
}

// ErrCollectionDown is returned by MemoryCollection when failing is set.
var ErrCollectionDown = errors.New("collection down")

// MemoryCollection is an in-process board.Collection.
type MemoryCollection struct {
	mu        sync.Mutex
	texts     []string
	listErr   error
	createErr error
	lists     int
	creates   []string

	// gates, when non-empty, are consumed one per List call; the call blocks
	// until its gate is closed.
	gates []chan struct{}
}

// NewMemoryCollection returns a collection holding texts.
func NewMemoryCollection(texts ...string) *MemoryCollection {
	return &MemoryCollection{texts: append([]string(nil), texts...)}
}

// List returns a snapshot of the collection.
func (m *MemoryCollection) List(ctx context.Context) ([]fact.Fact, error) {
	m.mu.Lock()
	m.lists++
	var gate chan struct{}
	if len(m.gates) > 0 {
		gate, m.gates = m.gates[0], m.gates[1:]
	}
	snapshot := append([]string(nil), m.texts...)
	err := m.listErr
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}

	out := make([]fact.Fact, len(snapshot))
	for i, t := range snapshot {
		out[i] = fact.New(t)
	}
	return out, nil
}

// Create appends text.
func (m *MemoryCollection) Create(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.creates = append(m.creates, text)
	if m.createErr != nil {
		return m.createErr
	}
	m.texts = append(m.texts, text)
	return nil
}

// Set replaces the stored texts.
func (m *MemoryCollection) Set(texts ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.texts = append([]string(nil), texts...)
}

// FailList makes List return err (nil restores).
func (m *MemoryCollection) FailList(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listErr = err
}

// FailCreate makes Create return err without storing (nil restores).
func (m *MemoryCollection) FailCreate(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.createErr = err
}

// Hold makes the next List call block until the returned gate is closed.
// Snapshots are taken when List is called, not when the gate opens.
func (m *MemoryCollection) Hold() chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	gate := make(chan struct{})
	m.gates = append(m.gates, gate)
	return gate
}

// Lists returns how many times List was called.
func (m *MemoryCollection) Lists() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lists
}

// Creates returns the texts passed to Create, accepted or not.
func (m *MemoryCollection) Creates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.creates...)
}

// String describes the collection for test failure output.
func (m *MemoryCollection) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return fmt.Sprintf("MemoryCollection%q", m.texts)
}
