package blog

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const WordsPerMinute = 200

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug turns a title into a URL-safe slug.
// Example: "Summer in Tbilisi!" -> "summer-in-tbilisi"
func MakeSlug(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "post"
	}
	return base
}

// FallbackSlug is used when the slug RPC fails: every character outside
// [a-z0-9] becomes a dash, nothing is collapsed.
func FallbackSlug(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('-')
	}
	return b.String()
}

// UniqueSlug appends -2, -3 ... to the base slug until taken reports false.
func UniqueSlug(title string, taken func(string) (bool, error)) (string, error) {
	base := MakeSlug(title)
	slug := base
	for n := 2; ; n++ {
		exists, err := taken(slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(n)
	}
}

func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	return int(math.Ceil(float64(words) / WordsPerMinute))
}
