// Package source reads raw catalog bytes from a local file, a brotli
// compressed file or an http(s) URL.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/andybalholm/brotli"

	"kursnet-xml-tool/internal/httpx"
)

// Reader fetches catalogs. The zero value reads local files and uses
// http.DefaultClient with the default retry policy for URLs.
type Reader struct {
	Client *http.Client
	Retry  httpx.RetryPolicy
}

// IsRemote reports whether ref is fetched over HTTP.
func IsRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Read returns the undecoded bytes behind ref. "-" reads standard input.
func (r Reader) Read(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case IsRemote(ref):
		body, err := httpx.Get(ctx, r.Client, ref, r.Retry)
		if err != nil {
			return nil, fmt.Errorf("source: fetch %s: %w", ref, err)
		}
		return maybeBrotli(ref, body)
	case ref == "-":
		return io.ReadAll(os.Stdin)
	default:
		raw, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		return maybeBrotli(ref, raw)
	}
}

// maybeBrotli decompresses raw when ref names a .br file.
func maybeBrotli(ref string, raw []byte) ([]byte, error) {
	if !strings.HasSuffix(strings.ToLower(ref), ".br") {
		return raw, nil
	}
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(raw)))
	if err != nil {
		return nil, fmt.Errorf("source: brotli %s: %w", ref, err)
	}
	return out, nil
}
