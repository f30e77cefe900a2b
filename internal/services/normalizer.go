package services

import (
	"strings"
	"unicode"

	"resume-reviewer/internal/models"
)

// Normalizer converts raw text into the deterministic token sequence
// consumed by the extractors: lower-casing, stop-word removal guarded
// by the skill-term allowlist, lemmatization, and collapsing of
// whitespace and punctuation runs. Sentence boundaries are retained for
// evidence quoting and pattern scoping.
type Normalizer interface {
	Normalize(text string) models.NormalizedText
}

type normalizer struct {
	dict *Dictionaries
}

func NewNormalizer(dict *Dictionaries) Normalizer {
	return &normalizer{dict: dict}
}

func (n *normalizer) Normalize(text string) models.NormalizedText {
	sentences := SplitSentences(text)

	var tokens []string
	for _, sentence := range sentences {
		tokens = append(tokens, n.normalizeSentence(sentence)...)
	}

	return models.NormalizedText{
		Tokens:    tokens,
		Sentences: sentences,
	}
}

func (n *normalizer) normalizeSentence(sentence string) []string {
	raw := Tokenize(sentence)

	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		// Skill-term tokens bypass both the stop-word filter and the
		// lemmatizer, otherwise abbreviations like "r" or "go" would be
		// dropped or mangled.
		if n.dict.Allowlisted(tok) {
			tokens = append(tokens, tok)
			continue
		}
		if n.dict.IsStopWord(tok) {
			continue
		}
		tokens = append(tokens, Lemmatize(tok))
	}
	return tokens
}

// SplitSentences splits raw text into trimmed sentences on terminal
// punctuation and blank lines. Paragraph boundaries from extraction
// arrive as newlines and therefore survive as sentence boundaries.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		current.Reset()
		if s != "" {
			sentences = append(sentences, collapseSpaces(s))
		}
	}

	runes := []rune(text)
	for i, r := range runes {
		switch r {
		case '.':
			// A dot immediately followed by a letter or digit sits
			// inside a term like "node.js" or "b.s.", not at a
			// sentence end.
			if i+1 < len(runes) && isTermRune(runes[i+1]) {
				current.WriteRune(r)
				continue
			}
			flush()
		case '!', '?', '\n', ';':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return sentences
}

func isTermRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Tokenize lower-cases and splits a string into word tokens. The runes
// + # . / are kept inside words so "c++", "c#", ".net", "node.js" and
// "ci/cd" stay intact. Trailing dots and slashes are sentence
// punctuation, not part of the term.
func Tokenize(text string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		w := strings.TrimRight(word.String(), "./")
		word.Reset()
		if w != "" {
			tokens = append(tokens, w)
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' || r == '/' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// lemmaExceptions covers irregular forms the suffix rules get wrong.
var lemmaExceptions = map[string]string{
	"experienced":  "experience",
	"experiences":  "experience",
	"technologies": "technology",
	"men":          "man",
	"women":        "woman",
	"people":       "person",
	"led":          "lead",
	"years":        "year",
	"yrs":          "year",
	"databases":    "database",
	"analyses":     "analysis",
	"built":        "build",
	"wrote":        "write",
	"degrees":      "degree",
}

// Lemmatize reduces a token to a base form with a small rule set. The
// output is a fixed point: Lemmatize(Lemmatize(x)) == Lemmatize(x).
func Lemmatize(token string) string {
	if base, ok := lemmaExceptions[token]; ok {
		return base
	}

	switch {
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		return token[:len(token)-3] + "y"
	case strings.HasSuffix(token, "sses"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "ing") && len(token) > 5:
		return undouble(token[:len(token)-3])
	case strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss") && !strings.HasSuffix(token, "us") && !strings.HasSuffix(token, "is") && len(token) > 3:
		return token[:len(token)-1]
	default:
		return token
	}
}

// undouble collapses a doubled final consonant left by suffix
// stripping ("running" -> "runn" -> "run").
func undouble(s string) string {
	if len(s) >= 2 && s[len(s)-1] == s[len(s)-2] && !isVowel(rune(s[len(s)-1])) {
		return s[:len(s)-1]
	}
	return s
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
