package goquery

// Rule extracts a candidate value for one field.
// ok is false when the rule does not match or its value is rejected.
type Rule[T any] func(p *Page) (value T, ok bool)

// First returns a rule that tries rules in order and accepts the first match.
func First[T any](rules ...Rule[T]) Rule[T] {
	return func(p *Page) (T, bool) {
		for _, rule := range rules {
			if v, ok := rule(p); ok {
				return v, true
			}
		}
		var zero T
		return zero, false
	}
}

// Attempt runs rule against p and returns fallback when the rule does not
// match or panics. It is the only way field rules are invoked, so a fault
// in one field never reaches the caller or other fields.
func Attempt[T any](rule Rule[T], fallback T, p *Page) (v T) {
	defer func() {
		if r := recover(); r != nil {
			v = fallback
		}
	}()
	if got, ok := rule(p); ok {
		return got
	}
	return fallback
}

// Optional lifts a rule into one producing a pointer, for nullable fields.
func Optional[T any](rule Rule[T]) Rule[*T] {
	return func(p *Page) (*T, bool) {
		v, ok := rule(p)
		if !ok {
			return nil, false
		}
		return &v, true
	}
}
