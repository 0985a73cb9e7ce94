package session

// Text is an optional string. The zero value is absent, which is distinct
// from a present empty string.
type Text struct {
	Value string
	Set   bool
}

// Some returns a present Text.
func Some(s string) Text {
	return Text{Value: s, Set: true}
}

// None returns an absent Text.
func None() Text {
	return Text{}
}

// Get returns the value and whether it is present.
func (t Text) Get() (string, bool) {
	return t.Value, t.Set
}

// Or returns the value, or fallback when absent.
func (t Text) Or(fallback string) string {
	if !t.Set {
		return fallback
	}
	return t.Value
}
