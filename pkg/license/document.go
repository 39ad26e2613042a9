package license

import "strings"

// Document is one legalcode file as named in the corpus listing, e.g.
// "by-sa_4.0_fr.html".
type Document struct {
	Name string
}

func (d Document) Ext() string {
	parts := strings.Split(d.Name, ".")
	return parts[len(parts)-1]
}

// IsHTML reports whether the document is checkable markup. Everything else
// in the listing (images, plaintext) is skipped.
func (d Document) IsHTML() bool {
	return d.Ext() == "html"
}

// Key is the logical document name: the filename with its .html extension
// stripped. It feeds both the raw-content fetch and BaseURL.
func (d Document) Key() string {
	return strings.TrimSuffix(d.Name, ".html")
}
