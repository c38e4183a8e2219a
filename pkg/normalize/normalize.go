// Package normalize cleans the free-text values that arrive from the intake
// form before they reach the board.
package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	parenthesised = regexp.MustCompile(`\s*\(.*?\)\s*`)
	// a trailing state code, separated by whitespace, "-" or "/"
	stateSuffix = regexp.MustCompile(`(?i)(?:\s*[-/]\s*|\s+)([a-z]{2})$`)

	upper = cases.Upper(language.BrazilianPortuguese)
	lower = cases.Lower(language.BrazilianPortuguese)
)

// particles stay lower-case unless they open the name.
var particles = map[string]struct{}{
	"da": {}, "de": {}, "do": {}, "das": {}, "dos": {}, "e": {},
}

var stateCodes = map[string]struct{}{
	"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {},
	"ES": {}, "GO": {}, "MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {},
	"PB": {}, "PR": {}, "PE": {}, "PI": {}, "RJ": {}, "RN": {}, "RS": {},
	"RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
}

// IsStateCode reports whether s is a Brazilian state abbreviation.
func IsStateCode(s string) bool {
	_, ok := stateCodes[strings.ToUpper(strings.TrimSpace(s))]
	return ok
}

// NormalizeCity turns raw answers such as "santo antônio da patrulha - RS"
// or "Canoas (RS)" into "Santo Antônio da Patrulha" and "Canoas".
func NormalizeCity(raw string) string {
	if raw == "" {
		return ""
	}

	cleaned := parenthesised.ReplaceAllString(raw, " ")
	cleaned = strings.TrimSpace(cleaned)

	if m := stateSuffix.FindStringSubmatchIndex(cleaned); m != nil {
		if IsStateCode(cleaned[m[2]:m[3]]) {
			cleaned = cleaned[:m[0]]
		}
	}

	words := strings.Fields(cleaned)
	for i, w := range words {
		lw := lower.String(w)
		if _, ok := particles[lw]; ok && i > 0 {
			words[i] = lw
			continue
		}
		words[i] = capitalize(lw)
	}
	return strings.Join(words, " ")
}

// capitalize upper-cases the first rune of an already lower-cased word.
func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return upper.String(string(r)) + w[size:]
}

// NormalizeInterests splits a comma separated answer into trimmed, non-empty
// items.
func NormalizeInterests(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
