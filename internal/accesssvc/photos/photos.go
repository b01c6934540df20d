// Package photos resolves stored photo paths to public URLs. The object
// store itself is an external collaborator; this only builds the URL.
package photos

import (
	"os"
	"strings"
)

const defaultBucket = "athlete-photos"

// Resolver turns a stored photo_path into a browser-reachable URL.
type Resolver interface {
	ResolveURL(path string) string
}

// PublicResolver builds public object URLs: <base>/storage/v1/object/public/<bucket>/<path>.
type PublicResolver struct {
	BaseURL string
	Bucket  string
}

func NewPublicResolverFromEnv() *PublicResolver {
	bucket := os.Getenv("PHOTO_BUCKET")
	if bucket == "" {
		bucket = defaultBucket
	}
	return &PublicResolver{
		BaseURL: strings.TrimRight(os.Getenv("PHOTO_BASE_URL"), "/"),
		Bucket:  bucket,
	}
}

func (r *PublicResolver) ResolveURL(path string) string {
	if path == "" || r.BaseURL == "" {
		return ""
	}
	return r.BaseURL + "/storage/v1/object/public/" + r.Bucket + "/" + strings.TrimLeft(path, "/")
}
