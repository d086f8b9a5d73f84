package training

import (
	"os"
	"path/filepath"
	"sort"
)

// DefaultCorpus is trained on when the corpus directory holds no documents.
var DefaultCorpus = []string{
	"python fastapi sql backend developer",
	"machine learning data scientist python pandas numpy",
	"frontend developer react javascript css html",
	"devops kubernetes docker cloud infrastructure",
	"data engineer spark hive aws bigdata",
}

// LoadCorpus reads every *.txt file of dir in name order, skipping unreadable files.
// fallback is true when nothing was read and DefaultCorpus is returned instead.
func LoadCorpus(dir string) (docs []string, fallback bool) {
	if dir != "" {
		paths, _ := filepath.Glob(filepath.Join(dir, "*.txt")) // only ErrBadPattern, impossible here
		sort.Strings(paths)
		for _, p := range paths {
			data, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			docs = append(docs, string(data))
		}
	}
	if len(docs) == 0 {
		return append([]string(nil), DefaultCorpus...), true
	}
	return docs, false
}
