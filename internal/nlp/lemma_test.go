package nlp

import "testing"

func TestNounLemmatizer(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"developers", "developer"},
		{"companies", "company"},
		{"ties", "tie"},
		{"processes", "process"},
		{"indexes", "index"},
		{"branches", "branch"},
		{"crashes", "crash"},
		{"business", "business"},
		{"status", "status"},
		{"basis", "basis"},
		{"devops", "devops"},
		{"women", "woman"},
		{"api", "api"},
		{"go", "go"},
	}
	var l NounLemmatizer
	for _, tc := range tests {
		if got := l.Lemmatize(tc.in); got != tc.want {
			t.Errorf("Lemmatize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNounLemmatizer_FixedPoints(t *testing.T) {
	var l NounLemmatizer
	for plural := range irregular {
		base := lemmatize(l, plural)
		if again := lemmatize(l, base); again != base {
			t.Errorf("%q -> %q -> %q", plural, base, again)
		}
	}
}

func TestLemmatize_NilIsIdentity(t *testing.T) {
	if got := lemmatize(nil, "developers"); got != "developers" {
		t.Errorf("got %q", got)
	}
}

func TestDictionaryLemmatizer(t *testing.T) {
	l, err := NewDictionaryLemmatizer()
	if err != nil {
		t.Fatalf("load dictionary: %v", err)
	}
	tests := []struct {
		in, want string
	}{
		{"abducting", "abduct"},
		{"developers", "developer"},
		{"companies", "company"},
		{"children", "child"},
		{"clusters", "cluster"},
		{"kubernetes", "kubernetes"},
		{"pandas", "pandas"},
		{"jenkins", "jenkins"},
		{"fastapi", "fastapi"},
	}
	for _, tc := range tests {
		if got := lemmatize(l, tc.in); got != tc.want {
			t.Errorf("lemmatize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDefaultLemmatizer_Shared(t *testing.T) {
	a, b := DefaultLemmatizer(), DefaultLemmatizer()
	if a != b {
		t.Error("expected one shared lemmatizer")
	}
	if _, ok := a.(*DictionaryLemmatizer); !ok {
		t.Errorf("expected dictionary lemmatizer, got %T", a)
	}
}
