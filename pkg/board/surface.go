package board

import "sync"

// Display is the surface rendered facts are shown on. Replace swaps the
// whole content; there are no partial updates.
type Display interface {
	Replace(content string)
}

// Input is the surface new fact text is typed into.
type Input interface {
	Value() string
	Clear()
}

// Buffer is an in-memory Display, safe for concurrent use.
type Buffer struct {
	mu       sync.RWMutex
	content  string
	replaced int
}

// NewBuffer returns an empty display buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Replace sets the displayed content.
func (b *Buffer) Replace(content string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.content = content
	b.replaced++
}

// String returns the displayed content.
func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.content
}

// Renders returns how many times the content has been replaced.
func (b *Buffer) Renders() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.replaced
}

// Field is an in-memory Input, safe for concurrent use.
type Field struct {
	mu    sync.RWMutex
	value string
}

// NewField returns an input field holding value.
func NewField(value string) *Field {
	return &Field{value: value}
}

// Set replaces the field value, as typing would.
func (f *Field) Set(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.value = value
}

// Value returns the current field value.
func (f *Field) Value() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.value
}

// Clear empties the field.
func (f *Field) Clear() {
	f.Set("")
}
