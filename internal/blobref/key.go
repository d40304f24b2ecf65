// Package blobref turns a public blob reference (a URL) into the object key
// inside its bucket.
package blobref

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/quotekeeper/internal/common"
)

// DefaultMarker is the path segment that separates the bucket from the
// object path in generated document URLs.
const DefaultMarker = "/quote-pdfs/"

// DeriveKey returns everything after marker in ref. It fails with
// common.ErrBlobKey when the marker is missing or nothing follows it.
// Query strings and fragments are not part of the key.
func DeriveKey(ref, marker string) (string, error) {
	if marker == "" {
		marker = DefaultMarker
	}
	i := strings.Index(ref, marker)
	if i < 0 {
		return "", fmt.Errorf("%w: marker %q not found", common.ErrBlobKey, marker)
	}
	key := ref[i+len(marker):]
	if j := strings.IndexAny(key, "?#"); j >= 0 {
		key = key[:j]
	}
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}
	if key == "" {
		return "", fmt.Errorf("%w: empty key", common.ErrBlobKey)
	}
	return key, nil
}
