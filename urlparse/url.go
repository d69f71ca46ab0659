package urlparse

// URL is a decomposed URL. A nil field means the component is absent; a
// non-nil field is never empty.
type URL struct {
	Scheme   *string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	Username *string `json:"username,omitempty" yaml:"username,omitempty"`
	Password *string `json:"password,omitempty" yaml:"password,omitempty"`
	Host     *string `json:"host,omitempty" yaml:"host,omitempty"`
	// Port keeps the digits exactly as written, leading zeros included.
	Port *string `json:"port,omitempty" yaml:"port,omitempty"`
	Path *string `json:"path,omitempty" yaml:"path,omitempty"`
	// Args is the raw query string without the leading "?".
	Args *string `json:"args,omitempty" yaml:"args,omitempty"`
	// Anchor is the raw fragment without the leading "#".
	Anchor *string `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	// Fullpath is path, "?args" and "#anchor" as they appeared in the input.
	Fullpath *string `json:"fullpath,omitempty" yaml:"fullpath,omitempty"`
}

// Release resets every component to absent. It is safe on a nil or zero URL
// and safe to call repeatedly.
func (u *URL) Release() {
	if u == nil {
		return
	}
	*u = URL{}
}

// Lookup returns the value of c and whether it is present.
func (u *URL) Lookup(c Component) (string, bool) {
	if u == nil || c < 0 || c >= numComponents {
		return "", false
	}
	if v := *u.slot(c); v != nil {
		return *v, true
	}
	return "", false
}

// Get returns the value of c, or def when c is absent.
func (u *URL) Get(c Component, def string) string {
	if v, ok := u.Lookup(c); ok {
		return v
	}
	return def
}

func (u *URL) slot(c Component) **string {
	switch c {
	case Scheme:
		return &u.Scheme
	case Username:
		return &u.Username
	case Password:
		return &u.Password
	case Host:
		return &u.Host
	case Port:
		return &u.Port
	case Path:
		return &u.Path
	case Args:
		return &u.Args
	case Anchor:
		return &u.Anchor
	case Fullpath:
		return &u.Fullpath
	}
	panic("urlparse: unknown component " + c.String())
}
