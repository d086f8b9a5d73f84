package nlp

import (
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// DictionaryLemmatizer looks tokens up in the English lemma dictionary. Domain terms
// that look inflected are kept as is, and tokens the dictionary leaves unchanged go
// through the noun rules.
type DictionaryLemmatizer struct {
	dict  *golem.Lemmatizer
	rules NounLemmatizer
}

// NewDictionaryLemmatizer loads the English dictionary.
func NewDictionaryLemmatizer() (*DictionaryLemmatizer, error) {
	dict, err := golem.New(en.New())
	if err != nil {
		return nil, err
	}
	return &DictionaryLemmatizer{dict: dict}, nil
}

// Lemmatize implements Lemmatizer.
func (l *DictionaryLemmatizer) Lemmatize(token string) string {
	if _, ok := invariant[token]; ok {
		return token
	}
	if base := l.dict.Lemma(token); base != token {
		return base
	}
	return l.rules.Lemmatize(token)
}

// словарь грузится один раз на процесс
var loadDefaultLemmatizer = sync.OnceValue(func() Lemmatizer {
	l, err := NewDictionaryLemmatizer()
	if err != nil {
		return NounLemmatizer{}
	}
	return l
})

// DefaultLemmatizer returns the shared dictionary lemmatizer, or the noun rules when the
// dictionary cannot be loaded.
func DefaultLemmatizer() Lemmatizer {
	return loadDefaultLemmatizer()
}
