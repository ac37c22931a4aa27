// Package mention rewrites channel mentions in script text into the role
// and faction terms the script parser understands.
//
// A role is mentioned as <#roleID> and becomes %Name; a faction is
// mentioned as <#factionID> and becomes $Name.
package mention

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/kittclouds/rolegen/pkg/catalog"
)

// ErrUnknownMention is returned when text mentions an ID that is neither a
// role nor a faction of the catalog.
var ErrUnknownMention = errors.New("mention: not a role or faction")

var leftover = regexp.MustCompile(`<#(\d+)>`)

// Rewriter replaces mentions using one Aho-Corasick automaton over every
// known mention.
type Rewriter struct {
	ac ahocorasick.AhoCorasick

	// patterns[i] is replaced by replacements[i].
	patterns     []string
	replacements []string
}

// Of returns the mention text for id.
func Of(id int64) string {
	return "<#" + strconv.FormatInt(id, 10) + ">"
}

// Format renders a generated role the way results are posted: name followed
// by its mention.
func Format(r catalog.Role) string {
	return fmt.Sprintf("%s (%s)", r.Name, Of(r.ID))
}

// New compiles a Rewriter for the roles and their factions. Role IDs take
// precedence when a role and a faction share an ID.
func New(roles []catalog.Role) *Rewriter {
	rw := &Rewriter{}
	seen := make(map[int64]bool, len(roles))

	add := func(id int64, term string) {
		if seen[id] {
			return
		}
		seen[id] = true
		rw.patterns = append(rw.patterns, Of(id))
		rw.replacements = append(rw.replacements, term)
	}

	for _, r := range roles {
		add(r.ID, "%"+r.Name)
	}
	for _, r := range roles {
		add(r.Faction.ID, "$"+r.Faction.Name)
	}

	if len(rw.patterns) > 0 {
		builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
			AsciiCaseInsensitive: false,
			MatchOnlyWholeWords:  false,
			MatchKind:            ahocorasick.LeftMostLongestMatch,
		})
		rw.ac = builder.Build(rw.patterns)
	}
	return rw
}

// Len returns the number of mentions the Rewriter knows.
func (rw *Rewriter) Len() int {
	return len(rw.patterns)
}

// Rewrite substitutes every known mention in text. Any mention left over
// afterwards is reported with ErrUnknownMention.
func (rw *Rewriter) Rewrite(text string) (string, error) {
	out := text
	if len(rw.patterns) > 0 {
		matches := rw.ac.FindAll(text)
		if len(matches) > 0 {
			var b strings.Builder
			b.Grow(len(text))
			last := 0
			for _, m := range matches {
				b.WriteString(text[last:m.Start()])
				b.WriteString(rw.replacements[m.Pattern()])
				last = m.End()
			}
			b.WriteString(text[last:])
			out = b.String()
		}
	}

	if m := leftover.FindStringSubmatch(out); m != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownMention, m[1])
	}
	return out, nil
}
