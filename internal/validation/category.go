package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var categorySlugRegex = regexp.MustCompile(`^[a-z0-9-]{2,50}$`)

// Slugs that would shadow API paths if categories ever get their own routes.
var reservedCategorySlugs = map[string]struct{}{
	"api":     {},
	"auth":    {},
	"docs":    {},
	"health":  {},
	"metrics": {},
	"models":  {},
}

// ValidateCategorySlug validates category slug format and reserved names.
func ValidateCategorySlug(slug string) error {
	if !categorySlugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 2-50 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug cannot start or end with a hyphen")
	}

	if _, exists := reservedCategorySlugs[slug]; exists {
		return fmt.Errorf("slug %q is reserved", slug)
	}

	return nil
}
