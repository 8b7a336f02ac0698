package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)

// slugify keeps the lowercase alphanumerics of the title and appends the creation millis.
func slugify(title string, at time.Time) string {
	base := nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "")
	return base + "-" + strconv.FormatInt(at.UnixMilli(), 10)
}
