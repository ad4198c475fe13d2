package timeparsing

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// nlpParser is shared; when.Parser is safe for concurrent use.
var nlpParser = newNLPParser()

func newNLPParser() *when.Parser {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return p
}

// ParseNaturalLanguage resolves expressions like "tomorrow", "next monday",
// or "in 2 hours" relative to now. The whole input must be a time
// expression; partial matches are rejected so typos don't silently parse.
func ParseNaturalLanguage(s string, now time.Time) (time.Time, error) {
	result, err := nlpParser.Parse(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %q: %w", s, err)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("unrecognized time expression: %q", s)
	}
	if result.Index != 0 || len(result.Text) != len(s) {
		return time.Time{}, fmt.Errorf("ambiguous time expression: %q", s)
	}
	return result.Time, nil
}
