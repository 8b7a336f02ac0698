package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// plainText strips markup from v and returns the literal text, so "Tom & Jerry"
// is stored as typed rather than as entities.
func plainText(p *bluemonday.Policy, v string) string {
	return strings.TrimSpace(html.UnescapeString(p.Sanitize(v)))
}
