package utils

import (
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// Slugify lowercases the title, keeps letters and digits, and joins the rest
// with single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")

	if slug == "" {
		slug = "untitled"
	}

	return slug
}

// GenerateUniqueSlug slugifies the title and appends -2, -3, ... until no
// blog article carries the result.
func GenerateUniqueSlug(database *gorm.DB, title string) (string, error) {
	base := Slugify(title)
	slug := base

	for suffix := 2; ; suffix++ {
		var count int64

		if err := database.Table("blog_articles").
			Where("slug = ? AND deleted_at IS NULL", slug).
			Count(&count).Error; err != nil {
			return "", err
		}

		if count == 0 {
			return slug, nil
		}

		slug = fmt.Sprintf("%s-%d", base, suffix)
	}
}
