package urlparse

import (
	"fmt"
	"sync/atomic"
)

// Parser holds a compiled URL grammar. Matching never mutates it, so one
// Parser may serve any number of goroutines. Create it with NewParser and
// release it with Close.
type Parser struct {
	g atomic.Pointer[grammar]
}

// NewParser compiles the default URL grammar.
//
// An ErrInvalidGrammar error means the built-in pattern is broken, which is a
// build defect rather than something callers should expect at runtime.
func NewParser() (*Parser, error) {
	return newParser(urlPattern)
}

func newParser(pattern string) (*Parser, error) {
	g, err := compileGrammar(pattern)
	if err != nil {
		return nil, err
	}
	p := &Parser{}
	p.g.Store(g)
	return p, nil
}

// Close releases the compiled grammar. It is safe to call on a nil Parser and
// more than once. Parse calls made after Close fail with ErrInvalidArgument.
func (p *Parser) Close() {
	if p == nil {
		return
	}
	p.g.Store(nil)
}

// Parse decomposes input into a new URL owned by the caller.
//
// It returns ErrInvalidArgument when p is nil or closed and ErrNoMatch when
// input is not an acceptable URL (the empty string never is). It never
// returns ErrOutOfMemory.
func (p *Parser) Parse(input string) (*URL, error) {
	u := &URL{}
	if err := p.ParseInto(input, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ParseInto decomposes input into out, releasing whatever out held before.
// On error out is left with every component absent.
func (p *Parser) ParseInto(input string, out *URL) error {
	if out == nil {
		return fmt.Errorf("%w: nil output URL", ErrInvalidArgument)
	}
	out.Release()

	if p == nil {
		return fmt.Errorf("%w: nil parser", ErrInvalidArgument)
	}
	g := p.g.Load()
	if g == nil {
		return fmt.Errorf("%w: parser is closed", ErrInvalidArgument)
	}

	loc := g.re.FindStringSubmatchIndex(input)
	if loc == nil {
		return ErrNoMatch
	}

	for _, c := range Components() {
		*out.slot(c) = g.submatch(input, loc, c)
	}

	// The host group needs at least one character, so a match without a
	// host means the grammar itself is wrong.
	if out.Host == nil {
		out.Release()
		return fmt.Errorf("%w: match without host", ErrNoMatch)
	}
	return nil
}
