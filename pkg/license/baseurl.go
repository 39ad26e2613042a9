package license

import "strings"

// BaseURL computes the canonical public URL a legalcode document is served
// under, from its logical key (filename without extension). The key encodes
// license class, version and optionally jurisdiction and language as
// underscore-separated parts; the branches below are the corpus's fixed
// naming convention, rule for rule, and must not be generalized.
//
//	by_4.0        -> <host>/licenses/by/4.0/legalcode
//	by-sa_4.0_fr  -> <host>/licenses/by-sa/4.0/legalcode.fr
//	zero_1.0      -> <host>/publicdomain/zero/1.0/legalcode
func BaseURL(host, key string) string {
	parts := strings.Split(key, "_")

	var path string
	switch {
	case parts[0] == "samplingplus":
		path = "/licenses/sampling+"
	case strings.HasPrefix(parts[0], "zero"):
		path = "/publicdomain/" + parts[0]
	default:
		path = "/licenses/" + parts[0]
	}

	if len(parts) > 1 {
		path += "/" + parts[1]
	}

	// Sampling+ jurisdiction ports carry no language suffix.
	if parts[0] == "samplingplus" && len(parts) == 3 {
		return host + path + "/" + parts[2] + "/legalcode"
	}

	if len(parts) == 4 {
		path += "/" + parts[2]
	}
	path += "/legalcode"
	if len(parts) >= 3 {
		path += "." + parts[len(parts)-1]
	}

	return host + path
}
