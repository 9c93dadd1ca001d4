// Package fact holds the single domain entity shared by every factboard
// component.
package fact

// Fact is one member of the remote facts collection.
//
// The backend may attach its own attributes (ids, timestamps) to each fact.
// They are accepted when decoding and dropped: only Text is ever rendered.
type Fact struct {
	Text string `json:"text"`
}

// New returns a Fact carrying text verbatim.
func New(text string) Fact {
	return Fact{Text: text}
}

// Texts returns the text of each fact, preserving order.
func Texts(facts []Fact) []string {
	out := make([]string, len(facts))
	for i, f := range facts {
		out[i] = f.Text
	}
	return out
}
