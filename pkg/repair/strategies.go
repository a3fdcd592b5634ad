package repair

import (
	"strings"
)

// strategy rewrites a candidate document. Every strategy is a pure function.
type strategy struct {
	name    string
	rewrite func(string) string
}

// cascade lists the strategies in the order they are attempted. Each one
// receives the output of the previous one.
var cascade = []strategy{
	{name: "direct", rewrite: func(s string) string { return s }},
	{name: "quotes", rewrite: normalizeQuotes},
	{name: "balance", rewrite: balanceBraces},
	{name: "separators", rewrite: fixSeparators},
	{name: "bare-keys", rewrite: quoteBareKeys},
}

var quoteReplacer = strings.NewReplacer(
	"'", `"`,
	"\u2018", `"`,
	"\u2019", `"`,
	"\u201c", `"`,
	"\u201d", `"`,
)

// normalizeQuotes replaces single and typographic quotes with double quotes
func normalizeQuotes(s string) string {
	return quoteReplacer.Replace(s)
}

// balanceBraces closes an unterminated string, then appends the closers of all
// containers left open, innermost first.
func balanceBraces(s string) string {
	var (
		stack    []byte
		inString bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if !inString && len(stack) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(stack) + 1)
	b.WriteString(s)
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	return b.String()
}

const (
	expectKey = iota
	afterKey
	expectValue
	afterValue
)

type frame struct {
	object bool
	phase  int
}

// fixSeparators inserts the separators missing between adjacent tokens (a colon
// after an object key, a comma between two values) and drops trailing commas
// before closing braces and brackets.
func fixSeparators(s string) string {
	out := make([]byte, 0, len(s)+16)
	stack := make([]frame, 0, 8)
	lastComma := -1

	top := func() *frame {
		if len(stack) == 0 {
			return nil
		}
		return &stack[len(stack)-1]
	}
	begin := func() {
		f := top()
		if f == nil {
			return
		}
		switch f.phase {
		case afterKey:
			out = append(out, ':')
			f.phase = expectValue
		case afterValue:
			out = append(out, ',')
			if f.object {
				f.phase = expectKey
			} else {
				f.phase = expectValue
			}
		}
		lastComma = -1
	}
	end := func() {
		f := top()
		if f == nil {
			return
		}
		if f.object && f.phase == expectKey {
			f.phase = afterKey
			return
		}
		f.phase = afterValue
	}

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '"':
			begin()
			j := endOfString(s, i)
			out = append(out, s[i:j]...)
			i = j
			end()
		case c == '{' || c == '[':
			begin()
			out = append(out, c)
			i++
			phase := expectValue
			if c == '{' {
				phase = expectKey
			}
			stack = append(stack, frame{object: c == '{', phase: phase})
		case c == '}' || c == ']':
			if lastComma >= 0 {
				out = append(out[:lastComma], out[lastComma+1:]...)
			}
			lastComma = -1
			out = append(out, c)
			i++
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			end()
		case c == ':':
			out = append(out, c)
			i++
			lastComma = -1
			if f := top(); f != nil && f.object {
				f.phase = expectValue
			}
		case c == ',':
			lastComma = len(out)
			out = append(out, c)
			i++
			if f := top(); f != nil {
				if f.object {
					f.phase = expectKey
				} else {
					f.phase = expectValue
				}
			}
		case isSpace(c):
			out = append(out, c)
			i++
		default:
			begin()
			j := i
			for j < len(s) && !isDelimiter(s[j]) {
				j++
			}
			out = append(out, s[i:j]...)
			i = j
			end()
		}
	}
	return string(out)
}

// quoteBareKeys wraps unquoted object keys in double quotes
func quoteBareKeys(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '"':
			j := endOfString(s, i)
			b.WriteString(s[i:j])
			i = j
		case isDelimiter(c):
			b.WriteByte(c)
			i++
		default:
			j := i
			for j < len(s) && !isDelimiter(s[j]) {
				j++
			}
			token := s[i:j]
			k := j
			for k < len(s) && isSpace(s[k]) {
				k++
			}
			if k < len(s) && s[k] == ':' {
				b.WriteByte('"')
				b.WriteString(token)
				b.WriteByte('"')
			} else {
				b.WriteString(token)
			}
			i = j
		}
	}
	return b.String()
}

// extractBraces returns the substring running from the first opening brace to the last closing one
func extractBraces(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// endOfString returns the index following the closing quote of the string starting at i.
// An unterminated string runs to the end of the input.
func endOfString(s string, i int) int {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(s)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDelimiter(c byte) bool {
	switch c {
	case '{', '}', '[', ']', ':', ',', '"':
		return true
	}
	return isSpace(c)
}
