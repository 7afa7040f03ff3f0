package roster

import (
	"strings"
	"unicode"
)

// lineQuotes wrap whole roster lines in spreadsheet exports.
const lineQuotes = "\"“”"

// Parse reads one roster line. Surrounding whitespace and a wrapping double
// quote are ignored. The line must contain a last name, one or two further
// comma-separated name segments, an optional parenthesized nickname, and a
// "#" followed by digits.
func Parse(line string) (Identity, error) {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimSpace(strings.Trim(trimmed, lineQuotes))
	p := &lineParser{raw: line, src: []rune(trimmed)}
	return p.parse()
}

type lineParser struct {
	raw string
	src []rune
	pos int
}

func (p *lineParser) parse() (Identity, error) {
	if len(p.src) == 0 {
		return Identity{}, p.fail("empty line")
	}

	segments := make([]string, 0, 3)
	segment, err := p.nameSegment("last name")
	if err != nil {
		return Identity{}, err
	}
	segments = append(segments, segment)

	for p.peek() == ',' {
		p.pos++
		if len(segments) == 3 {
			return Identity{}, p.fail("too many comma-separated name segments")
		}
		field := "first name"
		if len(segments) == 1 && p.hasCommaAhead() {
			field = "middle name"
		}
		segment, err := p.nameSegment(field)
		if err != nil {
			return Identity{}, err
		}
		segments = append(segments, segment)
	}
	if len(segments) < 2 {
		return Identity{}, p.fail("expected ',' after last name")
	}

	var id Identity
	id.Last = segments[0]
	if len(segments) == 3 {
		id.Middle = segments[1]
		id.First = segments[2]
	} else {
		id.First = segments[1]
	}

	p.skipSpace()
	if p.peek() == '(' {
		nick, err := p.nickname()
		if err != nil {
			return Identity{}, err
		}
		id.Nickname = nick
	}

	p.skipSpace()
	if p.peek() != '#' {
		return Identity{}, p.fail("expected '#' student ID")
	}
	p.pos++
	digits := p.digits()
	if digits == "" {
		return Identity{}, p.fail("student ID must be digits after '#'")
	}
	id.ID = "#" + digits

	p.skipSpace()
	if !p.eof() {
		return Identity{}, p.fail("unexpected text after student ID")
	}
	return id, nil
}

// nameSegment consumes runes up to the next delimiter and returns them trimmed.
func (p *lineParser) nameSegment(field string) (string, error) {
	start := p.pos
	for !p.eof() {
		switch p.src[p.pos] {
		case ',', '(', '#':
			return p.finishSegment(field, start)
		case ')':
			return "", p.fail("unexpected ')' in " + field)
		}
		p.pos++
	}
	return p.finishSegment(field, start)
}

func (p *lineParser) finishSegment(field string, start int) (string, error) {
	value := strings.TrimSpace(string(p.src[start:p.pos]))
	if value == "" {
		return "", p.fail("empty " + field)
	}
	return value, nil
}

func (p *lineParser) nickname() (string, error) {
	p.pos++ // '('
	start := p.pos
	for !p.eof() {
		switch p.src[p.pos] {
		case ')':
			value := strings.TrimSpace(string(p.src[start:p.pos]))
			p.pos++
			if value == "" {
				return "", p.fail("empty nickname")
			}
			return value, nil
		case '(', ',', '#':
			return "", p.fail("unexpected '" + string(p.src[p.pos]) + "' in nickname")
		}
		p.pos++
	}
	return "", p.fail("unterminated nickname")
}

func (p *lineParser) digits() string {
	start := p.pos
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

// hasCommaAhead reports whether another ',' appears before the nickname or ID.
func (p *lineParser) hasCommaAhead() bool {
	for i := p.pos; i < len(p.src); i++ {
		switch p.src[i] {
		case ',':
			return true
		case '(', '#':
			return false
		}
	}
	return false
}

func (p *lineParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *lineParser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *lineParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *lineParser) fail(reason string) error {
	return &LineError{Text: p.raw, Reason: reason}
}
