package nlp

import "strings"

// Lemmatizer reduces a token to its dictionary base form.
type Lemmatizer interface {
	Lemmatize(token string) string
}

// maxLemmaSteps bounds repeated lemmatization of a single token.
const maxLemmaSteps = 4

// irregular maps plural forms that suffix rules get wrong.
var irregular = map[string]string{
	"children":   "child",
	"women":      "woman",
	"men":        "man",
	"people":     "people",
	"feet":       "foot",
	"teeth":      "tooth",
	"mice":       "mouse",
	"geese":      "goose",
	"analyses":   "analysis",
	"diagnoses":  "diagnosis",
	"theses":     "thesis",
	"hypotheses": "hypothesis",
	"criteria":   "criterion",
	"phenomena":  "phenomenon",
	"indices":    "index",
	"matrices":   "matrix",
	"vertices":   "vertex",
	"apis":       "api",
	"caches":     "cache",
	"niches":     "niche",
	"movies":     "movie",
	"cookies":    "cookie",
	"lives":      "life",
	"wives":      "wife",
	"knives":     "knife",
	"leaves":     "leaf",
	"halves":     "half",
	"shelves":    "shelf",
}

// invariant holds words that end like plurals but are already base forms.
var invariant = toSet(
	"series", "species", "news", "sales", "mathematics", "physics",
	"economics", "analytics", "statistics", "logistics", "ethics", "graphics",
	"kubernetes", "devops", "finops", "mlops", "secops", "aws", "ios", "macos",
	"redis", "pandas", "jenkins", "rails", "express", "less", "sass", "postgres",
	"bias", "alias", "canvas", "atlas", "gas", "lens", "plus", "focus", "status",
	"chaos", "apparatus", "corpus", "campus", "bonus", "census", "virus",
)

// NounLemmatizer is a rule-based lemmatizer for English nouns, modelled on WordNet's
// default noun morphology: an exception table first, then plural suffix rules.
type NounLemmatizer struct{}

// Lemmatize implements Lemmatizer.
func (NounLemmatizer) Lemmatize(token string) string {
	if base, ok := irregular[token]; ok {
		return base
	}
	if _, ok := invariant[token]; ok {
		return token
	}
	if len(token) < 4 {
		return token
	}

	switch {
	case strings.HasSuffix(token, "ss"),
		strings.HasSuffix(token, "us"),
		strings.HasSuffix(token, "is"):
		return token
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		return token[:len(token)-3] + "y"
	case strings.HasSuffix(token, "sses"),
		strings.HasSuffix(token, "xes"),
		strings.HasSuffix(token, "ches"),
		strings.HasSuffix(token, "shes"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "s"):
		return token[:len(token)-1]
	default:
		return token
	}
}

// lemmatize applies l until the token stops changing. A candidate lemma that would be
// filtered by normalization (stopword, too short, outside [a-z0-9]) is rejected, so the
// token passes through unchanged. A panicking lemmatizer degrades to identity.
func lemmatize(l Lemmatizer, token string) (out string) {
	if l == nil {
		return token
	}
	out = token
	defer func() {
		if recover() != nil {
			out = token
		}
	}()

	for range maxLemmaSteps {
		next := l.Lemmatize(out)
		if next == out || !keepToken(next) {
			break
		}
		out = next
	}
	return out
}

func keepToken(token string) bool {
	if len(token) <= 1 || IsStopword(token) {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
