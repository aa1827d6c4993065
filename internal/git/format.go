package git

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// expandFormat renders a commit with the subset of git pretty-format placeholders
// chlog needs. Unknown placeholders are copied through unchanged.
//
//	%H  full hash         %h  abbreviated hash (7)
//	%s  subject           %b  body            %B  raw message
//	%an author name       %ae author email    %aI author date, strict ISO 8601
//	%n  newline           %%  literal percent %xNN byte with hex value NN
func expandFormat(format string, c *object.Commit) string {
	subject, body := splitMessage(c.Message)

	var b strings.Builder
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' || i+1 >= len(format) {
			b.WriteByte(ch)
			continue
		}

		next := format[i+1]
		switch next {
		case 'H':
			b.WriteString(c.Hash.String())
			i++
		case 'h':
			b.WriteString(c.Hash.String()[:7])
			i++
		case 's':
			b.WriteString(subject)
			i++
		case 'b':
			b.WriteString(body)
			i++
		case 'B':
			b.WriteString(c.Message)
			i++
		case 'n':
			b.WriteByte('\n')
			i++
		case '%':
			b.WriteByte('%')
			i++
		case 'a':
			if i+2 < len(format) && writeAuthorField(&b, format[i+2], c) {
				i += 2
				continue
			}
			b.WriteByte(ch)
		case 'x':
			if i+3 < len(format) {
				if v, err := strconv.ParseUint(format[i+2:i+4], 16, 8); err == nil {
					b.WriteByte(byte(v))
					i += 3
					continue
				}
			}
			b.WriteByte(ch)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func writeAuthorField(b *strings.Builder, field byte, c *object.Commit) bool {
	switch field {
	case 'n':
		b.WriteString(c.Author.Name)
	case 'e':
		b.WriteString(c.Author.Email)
	case 'I':
		b.WriteString(c.Author.When.Format(time.RFC3339))
	default:
		return false
	}
	return true
}

// splitMessage splits a raw commit message the way git does for %s and %b: the
// subject is the first paragraph joined onto one line, the body is everything after
// the first blank line.
func splitMessage(msg string) (subject, body string) {
	msg = strings.TrimLeft(msg, "\n")
	para, rest, _ := strings.Cut(msg, "\n\n")

	lines := strings.Split(strings.TrimSpace(para), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	subject = strings.Join(lines, " ")

	body = strings.TrimLeft(rest, "\n")
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return subject, body
}
