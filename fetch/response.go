package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/h2non/filetype"
	"github.com/jongio/httpget/logutil"
	"golang.org/x/time/rate"
)

const (
	copyBufferSize = 32 * 1024
	// sniffLen is the largest header filetype needs to identify a format.
	sniffLen = 262
)

// Response is a successful (200) reply whose body has not been read yet.
// Callers must Close it.
type Response struct {
	StatusLine    string
	StatusCode    int
	ContentLength int64
	Header        http.Header

	body      io.ReadCloser
	rateLimit int
	metrics   *Metrics
	log       *logutil.ComponentLogger
}

// Result describes a completed body transfer.
type Result struct {
	Bytes int64 `json:"bytes"`
	// ContentType is sniffed from the body, falling back to the
	// Content-Type header when the format is not recognized.
	ContentType string `json:"contentType,omitempty"`
}

// Close releases the connection. It is safe to call more than once.
func (r *Response) Close() error {
	if r == nil || r.body == nil {
		return nil
	}
	err := r.body.Close()
	r.body = nil
	return err
}

// Save streams the body to w, throttled to the client's rate limit.
// The bytes are written unmodified.
func (r *Response) Save(ctx context.Context, w io.Writer) (*Result, error) {
	if r == nil || r.body == nil {
		return nil, ErrBodyClosed
	}

	bufSize := copyBufferSize
	var limiter *rate.Limiter
	if r.rateLimit > 0 {
		bufSize = min(bufSize, r.rateLimit)
		limiter = rate.NewLimiter(rate.Limit(r.rateLimit), bufSize)
	}

	result := &Result{}
	head := make([]byte, 0, sniffLen)
	buf := make([]byte, bufSize)

	for {
		n, readErr := r.body.Read(buf)
		if n > 0 {
			if limiter != nil {
				if err := limiter.WaitN(ctx, n); err != nil {
					return result, fmt.Errorf("transfer interrupted: %w", err)
				}
			}
			if len(head) < sniffLen {
				head = append(head, buf[:min(n, sniffLen-len(head))]...)
			}
			written, err := w.Write(buf[:n])
			result.Bytes += int64(written)
			r.metrics.recordBytes(int64(written))
			if err != nil {
				return result, fmt.Errorf("write output: %w", err)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return result, fmt.Errorf("read body: %w", readErr)
		}
	}

	result.ContentType = r.detectType(head)
	r.log.Debug("transfer complete", "bytes", result.Bytes, "contentType", result.ContentType)
	return result, nil
}

func (r *Response) detectType(head []byte) string {
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
		return mediaType
	}
	return ""
}
