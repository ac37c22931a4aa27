package script

import (
	"strings"
)

// termKinds maps the term prefixes to the filter kind they start.
// '!' and '|' are control characters without a kind of their own.
var termKinds = map[rune]FilterKind{
	'%': RoleNameFilter,
	'$': FactionFilter,
}

func isControl(c rune) bool {
	switch c {
	case '%', '$', '!', '|':
		return true
	}
	return false
}

// exprScanner accumulates one expression's terms.
type exprScanner struct {
	buf     strings.Builder
	pending FilterKind
	hasKind bool
	negate  bool

	filters []Filter
	// union holds the members of the open | group.
	union     []Filter
	unionNext bool
}

// ParseExpression parses one line into a Slot. A leading '-' sets
// IgnoreGlobal. Terms joined by '|' collapse into a single union filter;
// the group closes at the first other control character or at end of line.
func ParseExpression(line string) Slot {
	slot := Slot{Source: line}
	if strings.HasPrefix(line, "-") {
		slot.IgnoreGlobal = true
		line = line[1:]
	}

	var s exprScanner
	for _, c := range line {
		switch {
		case c == '\\' || c == '`':
			continue
		case isControl(c):
			s.control(c)
		case c == ' ' && s.buf.Len() == 0:
			continue
		default:
			s.buf.WriteRune(c)
		}
	}
	s.flush()
	s.closeUnion()

	slot.Filters = s.filters
	return slot
}

func (s *exprScanner) control(c rune) {
	s.flush()

	if c == '|' {
		if len(s.union) == 0 && len(s.filters) > 0 {
			last := len(s.filters) - 1
			s.union = append(s.union, s.filters[last])
			s.filters = s.filters[:last]
		}
		s.unionNext = true
	} else if !s.unionNext {
		s.closeUnion()
	}

	s.pending, s.hasKind = termKinds[c]
	if c == '!' {
		s.negate = true
	}
}

// flush emits the buffered term. A '%' or '$' with no literal text still
// emits its filter, which matches no role; a bare empty term emits nothing.
func (s *exprScanner) flush() {
	value := strings.TrimSpace(s.buf.String())
	s.buf.Reset()
	if value == "" && !s.hasKind {
		return
	}

	kind := LabelFilter
	if s.hasKind {
		kind = s.pending
	}
	term := Filter{Kind: kind, Negated: s.negate, Value: value}
	s.negate = false
	s.hasKind = false

	if s.unionNext {
		s.union = append(s.union, term)
		s.unionNext = false
		return
	}
	s.closeUnion()
	s.filters = append(s.filters, term)
}

func (s *exprScanner) closeUnion() {
	if len(s.union) == 0 {
		return
	}
	s.filters = append(s.filters, Filter{Kind: UnionFilter, Members: s.union})
	s.union = nil
	s.unionNext = false
}
