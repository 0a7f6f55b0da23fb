package core

import (
	"net/url"
	"strings"
)

type FormField struct {
	Key   string
	Value string
}

// Form is an ordered form body. Unlike url.Values it encodes fields in the
// order they were added.
type Form []FormField

func (f Form) Add(key, value string) Form {
	return append(f, FormField{Key: key, Value: value})
}

func (f Form) Encode() string {
	var b strings.Builder
	for i, field := range f {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(field.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(field.Value))
	}
	return b.String()
}
