package bank

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	filePrefix    = "db_"
	fileSuffix    = ".json"
	chapterPrefix = "ch"
)

// Key identifies one question collection: the generation source that
// produced it, the certification level, and the chapter number. It is
// parsed from the collection filename exactly once, at the store
// boundary; the rest of the code passes the structured key around.
type Key struct {
	Source    string
	Level     string
	ChapterID int
}

// ParseFilename recovers a Key from a collection filename of the form
// db_<source>_<level>_ch<n>.json. The source may itself contain
// underscores, so the level and chapter are taken from the end.
func ParseFilename(name string) (Key, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return Key{}, false
	}
	stem := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	parts := strings.Split(stem, "_")
	if len(parts) < 3 {
		return Key{}, false
	}
	chapter := parts[len(parts)-1]
	if !strings.HasPrefix(chapter, chapterPrefix) {
		return Key{}, false
	}
	num, err := strconv.Atoi(strings.TrimPrefix(chapter, chapterPrefix))
	if err != nil || num < 0 {
		return Key{}, false
	}
	k := Key{
		Source:    strings.Join(parts[:len(parts)-2], "_"),
		Level:     parts[len(parts)-2],
		ChapterID: num,
	}
	if k.Source == "" || k.Level == "" {
		return Key{}, false
	}
	return k, true
}

// Filename renders the collection filename for this key.
func (k Key) Filename() string {
	return fmt.Sprintf("%s%s_%s_%s%d%s", filePrefix, k.Source, k.Level, chapterPrefix, k.ChapterID, fileSuffix)
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s%d", k.Source, k.Level, chapterPrefix, k.ChapterID)
}

// SanitizeSource strips characters that would break the filename convention
// from a source identifier (model ids often contain ":" or "/").
func SanitizeSource(source string) string {
	r := strings.NewReplacer(":", "", "/", "", " ", "")
	return r.Replace(source)
}
