package catalog

import (
	"regexp"
	"strings"
)

// Matcher filters names by pattern. A pattern wrapped in slashes, e.g.
// "/^Catan$/", is compiled as a regular expression; anything else is a
// case-insensitive substring match. A slash-wrapped pattern that fails to
// compile falls back to the substring branch.
type Matcher struct {
	re     *regexp.Regexp
	substr string
}

// NewMatcher builds a Matcher for the given pattern. An empty pattern
// matches everything.
func NewMatcher(pattern string) Matcher {
	if len(pattern) >= 2 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") {
		if re, err := regexp.Compile(pattern[1 : len(pattern)-1]); err == nil {
			return Matcher{re: re}
		}
	}
	return Matcher{substr: strings.ToLower(pattern)}
}

// Empty reports whether the matcher accepts every name.
func (m Matcher) Empty() bool {
	return m.re == nil && m.substr == ""
}

// Match reports whether the name satisfies the pattern.
func (m Matcher) Match(name string) bool {
	if m.re != nil {
		return m.re.MatchString(name)
	}
	if m.substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), m.substr)
}
