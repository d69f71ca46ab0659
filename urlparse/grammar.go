package urlparse

import (
	"fmt"
	"regexp"
	"strings"
)

// Component identifies one part of a decomposed URL.
type Component int

const (
	Scheme Component = iota
	Username
	Password
	Host
	Port
	Path
	Args
	Anchor
	Fullpath

	numComponents
)

var componentNames = [numComponents]string{
	Scheme:   "scheme",
	Username: "username",
	Password: "password",
	Host:     "host",
	Port:     "port",
	Path:     "path",
	Args:     "args",
	Anchor:   "anchor",
	Fullpath: "fullpath",
}

// String returns the lowercase component name, which is also the name of its
// capture group in the grammar.
func (c Component) String() string {
	if c < 0 || c >= numComponents {
		return fmt.Sprintf("Component(%d)", int(c))
	}
	return componentNames[c]
}

// Components returns every component in grammar order.
func Components() []Component {
	all := make([]Component, numComponents)
	for i := range all {
		all[i] = Component(i)
	}
	return all
}

// urlPattern is RFC 3986 Appendix B with an optional scheme, optional
// credentials, a mandatory host and a digits-only port.
//
// A scheme needs "://" so "host:80" is never read as scheme "host". The
// credentials group needs a trailing "@" so "name:word" alone stays host:port
// (or host plus path when "word" is not numeric).
const urlPattern = `(?i)^` +
	`(?:(?P<scheme>[^:/?#]+)://)?` +
	`(?:(?P<username>[^:/?#]*)(?::(?P<password>[^/?#]*))?@)?` +
	`(?P<host>[^:/?#]+)` +
	`(?::(?P<port>\d+))?` +
	`(?P<fullpath>(?P<path>[^?#]*)?(?:\?(?P<args>[^#]*))?(?:#(?P<anchor>[^#]*))?)?` +
	`$`

// grammar is a compiled pattern plus the submatch slot of every component.
type grammar struct {
	re    *regexp.Regexp
	slots [numComponents]int
}

func compileGrammar(pattern string) (*grammar, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGrammar, err)
	}

	g := &grammar{re: re}
	for c := Component(0); c < numComponents; c++ {
		idx := re.SubexpIndex(c.String())
		if idx < 0 {
			return nil, fmt.Errorf("%w: missing capture group %q", ErrInvalidGrammar, c.String())
		}
		g.slots[c] = idx
	}
	return g, nil
}

// submatch returns the text captured for c, or nil when the group did not
// participate in the match or matched the empty string.
func (g *grammar) submatch(input string, loc []int, c Component) *string {
	i := 2 * g.slots[c]
	start, end := loc[i], loc[i+1]
	if start < 0 || end <= start {
		return nil
	}
	s := strings.Clone(input[start:end])
	return &s
}
