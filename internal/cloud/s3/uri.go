package s3

import (
	"fmt"
	"strings"
)

// SplitURI splits an s3://bucket/key URI into bucket and key.
func SplitURI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3:// URI: %q", uri)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in URI: %q", uri)
	}
	return bucket, key, nil
}
