package process

import "github.com/PuerkitoBio/purell"

// Normalize reduces equivalent spellings of a URL to one cache key. The flag
// set must never merge two distinct resources; fragments are safe to drop
// since they do not change what a GET returns.
func Normalize(url string) (string, error) {
	flags := purell.FlagLowercaseScheme |
		purell.FlagLowercaseHost |
		purell.FlagRemoveDefaultPort |
		purell.FlagRemoveFragment |
		purell.FlagRemoveDotSegments

	return purell.NormalizeURLString(url, flags)
}
