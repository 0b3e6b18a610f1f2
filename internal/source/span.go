package source

import "fmt"

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span enclosing both s and other.
// Spans from different files cannot be joined; s wins.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Located pairs a value with the span it originated from. It carries
// provenance only, never ownership.
type Located[T any] struct {
	Item T
	Span Span
}

// At wraps item with the given span.
func At[T any](item T, span Span) Located[T] {
	return Located[T]{Item: item, Span: span}
}
