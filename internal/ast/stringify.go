package ast

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Stringify flattens n to its plain text, dropping all formatting.
// Str, Code and Math contribute their text; Space, SoftBreak and LineBreak
// contribute a single space. The result is NFC-normalized.
func Stringify(n Node) string {
	var b strings.Builder
	collectText(&b, n)
	return norm.NFC.String(b.String())
}

func collectText(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case nil, Scalar:
		// bare scalars are attributes, URLs and similar, never visible text
	case Sequence:
		for _, item := range v {
			collectText(b, item)
		}
	case Mapping:
		for _, p := range v {
			collectText(b, p.Value)
		}
	case *Typed:
		switch v.Kind {
		case "Str":
			if s, ok := TextOf(v); ok {
				b.WriteString(s)
			}
		case "Space", "SoftBreak", "LineBreak":
			b.WriteByte(' ')
		case "Code", "Math":
			// [attr, text] and [mathType, text]
			if seq, ok := v.Content.(Sequence); ok && len(seq) == 2 {
				if s, ok := seq[1].(Scalar); ok {
					if text, ok := s.Text(); ok {
						b.WriteString(text)
					}
				}
			}
		default:
			collectText(b, v.Content)
		}
	}
}
