package check

import "net/url"

// Resolve turns a raw href into the URL to probe. An href with no scheme and
// no host but a path is relative and joins against the document's base URL,
// root-relative or path-relative per the standard rules. Anything already
// absolute passes through unchanged. Fragment-only and empty hrefs must be
// filtered by the caller; they come back untouched here.
func Resolve(href string, base *url.URL) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}

	if u.Scheme == "" && u.Host == "" && u.Path != "" {
		return base.ResolveReference(u).String()
	}

	return href
}
