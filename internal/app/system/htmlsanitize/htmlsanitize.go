// Package htmlsanitize cleans user-entered text before it is served back
// to other users. Profile headlines were free-form input in older data, so
// denormalized actor payloads run through Strip on the way out.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps safe user-generated markup (bold, links, lists) and removes
// scripts, event handlers, and other dangerous constructs.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// Strip removes all markup, leaving plain text. Used for fields rendered
// inside JSON payloads where markup is never wanted.
func Strip(s string) string {
	return strict.Sanitize(s)
}
