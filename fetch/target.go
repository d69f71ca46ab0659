package fetch

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/jongio/httpget/urlparse"
)

const (
	// DefaultScheme is assumed when the URL has no scheme.
	DefaultScheme = "http"
	// DefaultPort is used when the URL has no port.
	DefaultPort = "80"
)

// Target builds the absolute request URL for u.
//
// The scheme must be absent or http (any case), no credentials may be
// present and the port must be within 1-65535. The request path is u's
// fullpath, or "/" when it has none. Range checking the port happens here
// because urlparse accepts any run of digits.
func Target(u *urlparse.URL) (string, error) {
	host, ok := u.Lookup(urlparse.Host)
	if !ok {
		return "", fmt.Errorf("%w: URL has no host", urlparse.ErrInvalidArgument)
	}

	scheme := u.Get(urlparse.Scheme, DefaultScheme)
	if !strings.EqualFold(scheme, DefaultScheme) {
		return "", fmt.Errorf("%w: '%s'", ErrUnsupportedScheme, scheme)
	}

	if u.Username != nil || u.Password != nil {
		return "", ErrAuthUnsupported
	}

	rawPort := u.Get(urlparse.Port, DefaultPort)
	port, err := strconv.Atoi(rawPort)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("%w: %s", ErrInvalidPort, rawPort)
	}

	path := u.Get(urlparse.Fullpath, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return DefaultScheme + "://" + net.JoinHostPort(host, strconv.Itoa(port)) + path, nil
}
