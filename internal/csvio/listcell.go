package csvio

import (
	"fmt"
	"strings"
)

// ParseList parses a list literal cell such as ['proud', "happy"] or
// ('a',). Only quoted string elements are accepted. ok is false when the
// cell is not a well-formed list; callers decide the fallback.
func ParseList(cell string) (items []string, ok bool) {
	s := strings.TrimSpace(cell)
	if len(s) < 2 {
		return nil, false
	}
	first, last := s[0], s[len(s)-1]
	if !((first == '[' && last == ']') || (first == '(' && last == ')')) {
		return nil, false
	}
	body := s[1 : len(s)-1]
	p := listParser{src: body}
	items, err := p.parse()
	if err != nil {
		return nil, false
	}
	return items, true
}

// FormatList renders items as a list literal that ParseList accepts.
func FormatList(items []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(it))
		b.WriteByte('\'')
	}
	b.WriteByte(']')
	return b.String()
}

type listParser struct {
	src string
	pos int
}

func (p *listParser) parse() ([]string, error) {
	items := []string{}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return items, nil
		}
		item, err := p.quoted()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return items, nil
		}
		if p.src[p.pos] != ',' {
			return nil, fmt.Errorf("expected ',' at offset %d", p.pos)
		}
		p.pos++
	}
}

func (p *listParser) quoted() (string, error) {
	quote := p.src[p.pos]
	if quote != '\'' && quote != '"' {
		return "", fmt.Errorf("expected quoted string at offset %d", p.pos)
	}
	p.pos++
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.src):
			b.WriteByte(p.src[p.pos+1])
			p.pos += 2
		case c == quote:
			p.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("unterminated string")
}

func (p *listParser) skipSpace() {
	for p.pos < len(p.src) && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
}
