package search

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// wordNumbers maps spelled-out counts to integers; queries rarely go past ten.
var wordNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// comparisonOps maps phrasal comparison cues to their symbolic operator.
// Absence of a cue means "=".
var comparisonOps = map[string]string{
	">=":           ">=",
	"<=":           "<=",
	">":            ">",
	"<":            "<",
	"at least":     ">=",
	"minimum of":   ">=",
	"minimum":      ">=",
	"at most":      "<=",
	"maximum of":   "<=",
	"maximum":      "<=",
	"more than":    ">",
	"greater than": ">",
	"above":        ">",
	"over":         ">",
	"less than":    "<",
	"below":        "<",
	"under":        "<",
}

const comparisonAlt = `>=|<=|>|<|at least|at most|more than|less than|greater than|minimum of|minimum|maximum of|maximum|above|below|over|under`

const numberAlt = `\d+|one|two|three|four|five|six|seven|eight|nine|ten`

var landSizeRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(sqm|sq\.?\s?m|square met(?:er|re)s?|acres?|hectares?|plots?)\b`)

// structuralPattern recognizes one room category: an optional comparison cue,
// a number, then one of the category's terms.
type structuralPattern struct {
	assign func(m *NumericMatches, c *NumericConstraint)
	re     *regexp.Regexp
}

func compileStructuralPattern(terms []string, assign func(*NumericMatches, *NumericConstraint)) structuralPattern {
	sorted := make([]string, len(terms))
	copy(sorted, terms)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, t := range sorted {
		quoted[i] = regexp.QuoteMeta(t)
	}

	re := regexp.MustCompile(
		`(?:(` + comparisonAlt + `)\s*)?(` + numberAlt + `)[\s-]*(?:` + strings.Join(quoted, "|") + `)\b`,
	)
	return structuralPattern{assign: assign, re: re}
}

// ExtractNumbers scans normalized text for room counts and a land size. A
// bare number with no structural term adjacent is never captured here; that
// keeps prices and street numbers out of the room filters.
func (p *Parser) ExtractNumbers(text string) NumericMatches {
	var out NumericMatches

	for _, pat := range p.structural {
		m := pat.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value, ok := parseCountToken(m[2])
		if !ok {
			continue
		}
		op := "="
		if cue := strings.TrimSpace(m[1]); cue != "" {
			if mapped, known := comparisonOps[cue]; known {
				op = mapped
			}
		}
		pat.assign(&out, &NumericConstraint{Operator: op, Value: value})
	}

	if m := landSizeRe.FindString(text); m != "" {
		out.LandSize = m
	}

	return out
}

func parseCountToken(tok string) (int, bool) {
	if n, ok := wordNumbers[tok]; ok {
		return n, true
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
