package enums

import "fmt"

// AddonCategory groups add-ons in the catalog.
type AddonCategory string

const (
	AddonCategoryVideo   AddonCategory = "video"
	AddonCategoryPhoto   AddonCategory = "photo"
	AddonCategoryService AddonCategory = "service"
)

var validAddonCategories = []AddonCategory{
	AddonCategoryVideo,
	AddonCategoryPhoto,
	AddonCategoryService,
}

// String implements fmt.Stringer.
func (c AddonCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known AddonCategory.
func (c AddonCategory) IsValid() bool {
	for _, candidate := range validAddonCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseAddonCategory converts raw input into an AddonCategory.
func ParseAddonCategory(value string) (AddonCategory, error) {
	for _, candidate := range validAddonCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid addon category %q", value)
}
