package main

import (
	"strings"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// fzf-backed query matching. Space-separated terms must all match (AND).
//
//	"foo"   fuzzy subsequence match
//	"'foo"  exact substring match
//	"^foo"  prefix match
//	"foo$"  suffix match
//	"!foo"  negated fuzzy match
func init() {
	algo.Init("default")
}

var slab = util.MakeSlab(100*1024, 2048)

type termKind int

const (
	termFuzzy termKind = iota
	termExact
	termPrefix
	termSuffix
)

type queryTerm struct {
	runes         []rune
	kind          termKind
	negated       bool
	caseSensitive bool
}

// query is a pre-parsed filter expression. Parse once, score many.
type query struct {
	terms []queryTerm
}

func parseQuery(raw string) query {
	var q query
	for _, tok := range strings.Fields(raw) {
		q.terms = append(q.terms, parseTerm(tok))
	}
	return q
}

func parseTerm(tok string) queryTerm {
	t := queryTerm{kind: termFuzzy}
	if len(tok) > 1 && tok[0] == '!' {
		t.negated = true
		tok = tok[1:]
	}
	switch {
	case len(tok) > 1 && tok[0] == '\'':
		t.kind = termExact
		tok = tok[1:]
	case len(tok) > 1 && tok[0] == '^':
		t.kind = termPrefix
		tok = tok[1:]
	case len(tok) > 1 && tok[len(tok)-1] == '$':
		t.kind = termSuffix
		tok = tok[:len(tok)-1]
	}
	t.caseSensitive = strings.IndexFunc(tok, unicode.IsUpper) >= 0
	if !t.caseSensitive {
		tok = strings.ToLower(tok)
	}
	t.runes = []rune(tok)
	return t
}

// match scores a candidate against the query. Higher is better; ok is false
// when any term fails.
func (q query) match(candidate string) (score int, ok bool) {
	if len(q.terms) == 0 {
		return 0, true
	}
	chars := util.ToChars([]byte(candidate))
	for _, t := range q.terms {
		fn := algo.FuzzyMatchV2
		switch t.kind {
		case termExact:
			fn = algo.ExactMatchNaive
		case termPrefix:
			fn = algo.PrefixMatch
		case termSuffix:
			fn = algo.SuffixMatch
		}
		result, _ := fn(t.caseSensitive, false, true, &chars, t.runes, false, slab)
		matched := result.Start >= 0
		if t.negated {
			if matched {
				return 0, false
			}
			continue
		}
		if !matched {
			return 0, false
		}
		score += result.Score
	}
	return score, true
}
