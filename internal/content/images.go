package content

import "strings"

// legacyImagePrefixes are directory layouts question files have carried over
// the years. They are stripped before the name is joined under the
// configured images base so old and new files resolve to the same URL.
var legacyImagePrefixes = []string{
	"images/",
	"static/",
	"assets/",
	"img/",
}

// ResolveImageURL normalizes a raw image reference into a fetchable URL
// under imagesBase. It is a pure function and idempotent: resolving an
// already-resolved URL returns it unchanged, which the review screen relies
// on when it re-resolves stored entries.
func ResolveImageURL(raw, imagesBase string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if strings.HasPrefix(raw, "/") {
		return raw
	}

	name := raw
	for stripped := true; stripped; {
		stripped = false
		for _, prefix := range legacyImagePrefixes {
			if strings.HasPrefix(name, prefix) && len(name) > len(prefix) {
				name = name[len(prefix):]
				stripped = true
			}
		}
	}

	base := strings.TrimRight(imagesBase, "/")
	switch {
	case base == "":
		base = "/images"
	case strings.HasPrefix(base, "http://"), strings.HasPrefix(base, "https://"), strings.HasPrefix(base, "/"):
		// Already rooted.
	default:
		// A relative base would make resolution non-idempotent: the result
		// would not match the passthrough rules on a second pass.
		base = "/" + base
	}
	return base + "/" + name
}
