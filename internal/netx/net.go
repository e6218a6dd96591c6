// Package netx contains a small JSON-over-HTTP helper shared by the
// registry and identity clients.
package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/bothoster/internal/buildinfo"
	"github.com/dmitrijs2005/bothoster/internal/common"
)

// ErrTransport marks failures that happened before an HTTP response was
// received (DNS, refused connection, timeout, cancelled context).
var ErrTransport = errors.New("transport error")

// DefaultClient is used when Params.HTTPClient is nil.
var DefaultClient = &http.Client{
	Timeout: 15 * time.Second,
}

// Params describes a single JSON request.
type Params struct {
	Method  string
	URL     string
	Headers map[string]string
	// Body is marshaled to JSON when non-nil.
	Body       any
	HTTPClient *http.Client
	// Scrubber removes secrets (bot tokens, API keys) from error text.
	Scrubber *strings.Replacer
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, bytes.TrimSpace(e.Body))
}

type scrubbedError struct {
	err      error
	scrubber *strings.Replacer
}

func (se *scrubbedError) Error() string {
	if se.scrubber != nil {
		return se.scrubber.Replace(se.err.Error())
	}
	return se.err.Error()
}

func (se *scrubbedError) Unwrap() error { return se.err }

func scrubErr(err error, scrubber *strings.Replacer) error {
	if scrubber == nil {
		return err
	}
	return &scrubbedError{err: err, scrubber: scrubber}
}

// Scrub hides every non-empty secret in err's text and keeps err's chain.
func Scrub(err error, secrets ...string) error {
	if err == nil {
		return nil
	}
	return scrubErr(err, NewScrubber(secrets...))
}

// NewScrubber returns a replacer that masks every non-empty secret.
func NewScrubber(secrets ...string) *strings.Replacer {
	var pairs []string
	for _, s := range secrets {
		if s == "" {
			continue
		}
		pairs = append(pairs, s, common.SecretMask)
	}
	return strings.NewReplacer(pairs...)
}

// DoJSON performs the request and decodes a JSON response into Response.
// Any 2xx status is success; an empty body yields the zero Response.
func DoJSON[Response any](ctx context.Context, p Params) (Response, error) {
	var resp Response

	b, err := Do(ctx, p)
	if err != nil {
		return resp, err
	}

	if len(bytes.TrimSpace(b)) == 0 {
		return resp, nil
	}

	if err := json.Unmarshal(b, &resp); err != nil {
		return resp, scrubErr(fmt.Errorf("decode response: %w", err), p.Scrubber)
	}

	return resp, nil
}

// Do performs the request and returns the raw response body. Any 2xx
// status is success whatever the body holds; other statuses yield a
// *StatusError.
func Do(ctx context.Context, p Params) ([]byte, error) {
	var br io.Reader
	if p.Body != nil {
		data, err := json.Marshal(p.Body)
		if err != nil {
			return nil, scrubErr(fmt.Errorf("marshal request: %w", err), p.Scrubber)
		}
		br = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, p.Method, p.URL, br)
	if err != nil {
		return nil, scrubErr(fmt.Errorf("new request: %w", err), p.Scrubber)
	}

	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", UserAgent())
	req.Header.Set("Accept", "application/json")
	if p.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpc := DefaultClient
	if p.HTTPClient != nil {
		httpc = p.HTTPClient
	}

	res, err := httpc.Do(req)
	if err != nil {
		return nil, scrubErr(fmt.Errorf("%w: %w", ErrTransport, err), p.Scrubber)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, scrubErr(fmt.Errorf("%w: read body: %w", ErrTransport, err), p.Scrubber)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, scrubErr(&StatusError{
			Method:     p.Method,
			URL:        p.URL,
			StatusCode: res.StatusCode,
			Body:       b,
		}, p.Scrubber)
	}
	return b, nil
}

// Probe issues a GET to url and reports only whether a response arrived.
// Any status code counts as reachable.
func Probe(ctx context.Context, httpc *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent())

	if httpc == nil {
		httpc = DefaultClient
	}
	res, err := httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return res.Body.Close()
}

func UserAgent() string {
	return common.AppName + "/" + buildinfo.Version()
}
