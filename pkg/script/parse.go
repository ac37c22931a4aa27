package script

import (
	"math"
	"strconv"
	"strings"

	"github.com/kittclouds/rolegen/pkg/catalog"
)

// Directive prefixes.
const (
	globalPrefix   = '+'
	modifierPrefix = '?'
	weightPrefix   = '='
)

var modifierAliases = map[string]ModifierKind{
	"individual":        Individuality,
	"individuality":     Individuality,
	"indv":              Individuality,
	"limit":             Limit,
	"lim":               Limit,
	"rolelimit":         Limit,
	"exclusive":         MutualExclusive,
	"mutualexclusive":   MutualExclusive,
	"mutualexclusivity": MutualExclusive,
	"mutexclusive":      MutualExclusive,
	"mexc":              MutualExclusive,
	"exc":               MutualExclusive,
}

// Parse turns script text into a Rolelist. roles is the projected catalog
// that modifier and weight changer targets are resolved against.
func Parse(text string, roles []catalog.PartialRole) (*Rolelist, error) {
	rl := &Rolelist{}

	for i, line := range splitLines(text) {
		n := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch line[0] {
		case globalPrefix:
			rl.GlobalFilters = append(rl.GlobalFilters, ParseExpression(line[1:]).Filters...)

		case modifierPrefix:
			m, err := parseModifier(line[1:], roles, n)
			if err != nil {
				return nil, err
			}
			rl.Modifiers = append(rl.Modifiers, m)

		case weightPrefix:
			w, err := parseWeightChanger(line[1:], roles, n)
			if err != nil {
				return nil, err
			}
			rl.WeightChangers = append(rl.WeightChangers, w)

		default:
			rl.Slots = append(rl.Slots, ParseExpression(line))
		}
	}

	return rl, nil
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// resolveTargets evaluates expr against the catalog. An empty result is fatal.
func resolveTargets(expr string, roles []catalog.PartialRole, line int) (catalog.IDSet, error) {
	expr = strings.TrimSpace(expr)
	matched := ApplyAll(roles, ParseExpression(expr).Filters)
	if len(matched) == 0 {
		return catalog.IDSet{}, newError(NoMatchingRoles, line, expr, "no roles match %q", expr)
	}
	return catalog.IDsOf(matched), nil
}

func parseModifier(body string, roles []catalog.PartialRole, line int) (Modifier, error) {
	args := strings.Split(body, ":")
	name := strings.ToLower(strings.TrimSpace(args[0]))

	kind, ok := modifierAliases[name]
	if !ok {
		return Modifier{}, newError(UnknownDirective, line, body, "unknown modifier %q", name)
	}

	arg := func(i int) string {
		if i < len(args) {
			return strings.TrimSpace(args[i])
		}
		return ""
	}

	switch kind {
	case Individuality:
		if arg(1) == "" {
			if len(roles) == 0 {
				return Modifier{}, newError(NoMatchingRoles, line, body, "no roles for %s", name)
			}
			return NewIndividuality(catalog.IDsOf(roles)), nil
		}
		targets, err := resolveTargets(arg(1), roles, line)
		if err != nil {
			return Modifier{}, err
		}
		return NewIndividuality(targets), nil

	case Limit:
		if arg(1) == "" {
			return Modifier{}, newError(InvalidArgument, line, body, "%s needs a role expression", name)
		}
		limit := 1
		if s := arg(2); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return Modifier{}, newError(InvalidArgument, line, body, "limit %q is not a non-negative integer", s)
			}
			limit = n
		}
		targets, err := resolveTargets(arg(1), roles, line)
		if err != nil {
			return Modifier{}, err
		}
		return NewLimit(targets, limit), nil

	default:
		if arg(1) == "" {
			return Modifier{}, newError(InvalidArgument, line, body, "%s needs a role expression", name)
		}
		targets, err := resolveTargets(arg(1), roles, line)
		if err != nil {
			return Modifier{}, err
		}
		var others catalog.IDSet
		if arg(2) != "" {
			if others, err = resolveTargets(arg(2), roles, line); err != nil {
				return Modifier{}, err
			}
		}
		return NewMutualExclusive(targets, others), nil
	}
}

func parseWeightChanger(body string, roles []catalog.PartialRole, line int) (WeightChanger, error) {
	args := strings.Split(body, ":")
	if strings.TrimSpace(args[0]) == "" {
		return WeightChanger{}, newError(InvalidArgument, line, body, "weight changer needs a role expression")
	}

	var param string
	if len(args) >= 2 {
		param = strings.ToLower(strings.TrimSpace(args[1]))
	}
	if param == "" {
		return WeightChanger{}, newError(UnknownDirective, line, body, "missing weight symbol")
	}

	w := WeightChanger{}
	number := param[1:]
	switch sym := param[0]; {
	case sym >= '0' && sym <= '9':
		w.Op = WeightSet
		number = param
	case sym == '+':
		w.Op = WeightAdd
	case sym == '-':
		w.Op = WeightSubtract
	case sym == '*' || sym == 'x':
		w.Op = WeightMultiply
	case sym == '/':
		w.Op = WeightDivide
	default:
		return WeightChanger{}, newError(UnknownDirective, line, body, "unknown weight symbol %q", string(sym))
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(number), 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return WeightChanger{}, newError(InvalidArgument, line, body, "weight %q is not a number", number)
	}
	if w.Op == WeightDivide && value == 0 {
		return WeightChanger{}, newError(InvalidArgument, line, body, "division by zero")
	}
	w.Argument = value

	if len(args) >= 3 {
		s := strings.TrimSpace(args[2])
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return WeightChanger{}, newError(InvalidArgument, line, body, "usage limit %q is not a non-negative integer", s)
		}
		w.Limited = true
		w.Limit = n
	}

	targets, err := resolveTargets(args[0], roles, line)
	if err != nil {
		return WeightChanger{}, err
	}
	w.Targets = targets
	return w, nil
}
