package prompts

import (
	"fmt"
	"strings"
)

// segment is either literal text or a named placeholder.
type segment struct {
	literal string
	name    string
	field   bool
}

// parse splits a template into segments. "{name}" is a placeholder, "{{" and
// "}}" are literal braces. Anything else involving a lone brace is an error.
func parse(tmpl string) ([]segment, error) {
	var (
		segs []segment
		lit  strings.Builder
	)

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexAny(tmpl[i+1:], "{}")
			if end < 0 || tmpl[i+1+end] != '}' {
				return nil, fmt.Errorf("unclosed '{' at offset %d", i)
			}
			name := strings.TrimSpace(tmpl[i+1 : i+1+end])
			if name == "" {
				return nil, fmt.Errorf("empty placeholder at offset %d", i)
			}
			flush()
			segs = append(segs, segment{name: name, field: true})
			i += end + 1
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, fmt.Errorf("single '}' at offset %d", i)
		default:
			lit.WriteByte(c)
		}
	}
	flush()

	return segs, nil
}

func names(segs []segment) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range segs {
		if s.field && !seen[s.name] {
			seen[s.name] = true
			out = append(out, s.name)
		}
	}
	return out
}

func render(segs []segment, values map[string]any) string {
	var b strings.Builder
	for _, s := range segs {
		if !s.field {
			b.WriteString(s.literal)
			continue
		}
		switch v := values[s.name].(type) {
		case string:
			b.WriteString(v)
		default:
			b.WriteString(fmt.Sprint(v))
		}
	}
	return b.String()
}
