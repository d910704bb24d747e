package sink

import (
	"fmt"
	"regexp"
	"time"
)

// DefaultPrefix is the file name prefix of saved artifacts.
const DefaultPrefix = "VoronoiGen"

var unsafeChars = regexp.MustCompile(`[^\w.@-]`)

// Clean removes every character that is not a word character, '.', '@'
// or '-'.
func Clean(s string) string {
	return unsafeChars.ReplaceAllString(s, "")
}

// FileName returns "<prefix>-<timestamp>.<ext>" with the timestamp cleaned
// for use in file names. An empty prefix uses DefaultPrefix.
func FileName(prefix string, t time.Time, ext string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s-%s.%s", Clean(prefix), Clean(t.Format("2006-01-02 15:04:05")), ext)
}
