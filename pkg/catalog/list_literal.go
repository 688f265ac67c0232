package catalog

import (
	"fmt"
	"strings"
)

// ParseListLiteral parses a bracketed list of quoted strings such as
// ['nasi kuning', "es teh"]. Only string items are accepted. An empty or
// blank input yields an empty list.
func ParseListLiteral(s string) ([]string, error) {
	p := &listParser{src: []rune(strings.TrimSpace(s))}
	if len(p.src) == 0 {
		return []string{}, nil
	}
	return p.parse()
}

// SafeList is ParseListLiteral that degrades to an empty list.
func SafeList(s string) []string {
	items, err := ParseListLiteral(s)
	if err != nil {
		return []string{}
	}
	return items
}

type listParser struct {
	src []rune
	pos int
}

func (p *listParser) parse() ([]string, error) {
	if !p.consume('[') {
		return nil, p.errorf("expected '['")
	}

	items := []string{}
	for {
		p.skipSpace()
		if p.consume(']') {
			break
		}

		item, err := p.quoted()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(']') {
			break
		}
		return nil, p.errorf("expected ',' or ']'")
	}

	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("trailing characters")
	}
	return items, nil
}

func (p *listParser) quoted() (string, error) {
	if p.pos >= len(p.src) {
		return "", p.errorf("unexpected end of input")
	}
	quote := p.src[p.pos]
	if quote != '\'' && quote != '"' {
		return "", p.errorf("expected quoted string")
	}
	p.pos++

	var sb strings.Builder
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		p.pos++
		switch {
		case r == quote:
			return sb.String(), nil
		case r == '\\':
			if p.pos >= len(p.src) {
				return "", p.errorf("dangling escape")
			}
			esc := p.src[p.pos]
			p.pos++
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case '\\', '\'', '"':
				sb.WriteRune(esc)
			default:
				sb.WriteRune('\\')
				sb.WriteRune(esc)
			}
		default:
			sb.WriteRune(r)
		}
	}
	return "", p.errorf("unterminated string")
}

func (p *listParser) consume(r rune) bool {
	if p.pos < len(p.src) && p.src[p.pos] == r {
		p.pos++
		return true
	}
	return false
}

func (p *listParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

func (p *listParser) errorf(msg string) error {
	return fmt.Errorf("list literal at %d: %s", p.pos, msg)
}
