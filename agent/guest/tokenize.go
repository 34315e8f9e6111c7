package guest

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "he": {}, "her": {}, "his": {},
	"i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {}, "me": {},
	"my": {}, "no": {}, "not": {}, "of": {}, "on": {}, "or": {}, "she": {}, "so": {},
	"such": {}, "that": {}, "the": {}, "their": {}, "them": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "to": {}, "was": {}, "were": {}, "who": {},
	"will": {}, "with": {}, "you": {}, "your": {},
}

// tokenize lower-cases text, drops stop words and stems the rest. Email
// addresses are also kept whole so an exact address outranks shared domains.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == '(' || r == ')' || r == '"' || r == '<' || r == '>'
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.Trim(field, ".:!?'`")
		if field == "" {
			continue
		}
		if strings.Contains(field, "@") {
			tokens = append(tokens, field)
		}
		for _, part := range strings.FieldsFunc(field, isSeparator) {
			if _, stop := stopWords[part]; stop {
				continue
			}
			tokens = append(tokens, english.Stem(part, false))
		}
	}
	return tokens
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
