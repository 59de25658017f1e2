package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UnknownTagError is returned when a stored or typed enum value is not in
// the tag table of its type.
type UnknownTagError struct {
	Kind string
	Tag  string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Tag)
}

// ParseTag matches raw against the allowed tags, ignoring case and
// surrounding whitespace.
func ParseTag[T ~string](kind, raw string, allowed ...T) (T, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for _, tag := range allowed {
		if string(tag) == normalized {
			return tag, nil
		}
	}
	var zero T
	return zero, &UnknownTagError{Kind: kind, Tag: raw}
}

// UnmarshalTag decodes a JSON string and runs it through parse.
func UnmarshalTag[T ~string](data []byte, parse func(string) (T, error)) (T, error) {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		var zero T
		return zero, err
	}
	return parse(raw)
}
