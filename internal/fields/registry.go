package fields

import (
	"fmt"
	"strings"
)

// Lookup tables derived from the catalog once at start-up. They are never
// written after init, so concurrent readers need no locking.
var (
	commonIDs      map[string]struct{}
	categoryFields map[Category][]FieldDefinition
	categoryIndex  map[Category]map[string]int
)

func init() {
	if err := validateRegistry(commonFields, specificFields); err != nil {
		panic(err)
	}

	commonIDs = make(map[string]struct{}, len(commonFields))
	for _, f := range commonFields {
		commonIDs[f.ID] = struct{}{}
	}

	categoryFields = make(map[Category][]FieldDefinition, len(specificFields))
	categoryIndex = make(map[Category]map[string]int, len(specificFields))
	for _, info := range categoryInfos {
		all := make([]FieldDefinition, 0, len(commonFields)+len(specificFields[info.Value]))
		all = append(all, commonFields...)
		all = append(all, specificFields[info.Value]...)

		idx := make(map[string]int, len(all))
		for i, f := range all {
			idx[f.ID] = i
		}
		categoryFields[info.Value] = all
		categoryIndex[info.Value] = idx
	}
}

// validateRegistry checks the construction invariants migration relies on:
// ids are unique, common ids never collide with specific ids, specific ids
// are disjoint across categories and options exist exactly on select types.
func validateRegistry(common []FieldDefinition, specific map[Category][]FieldDefinition) error {
	owner := make(map[string]string)

	check := func(where string, f FieldDefinition) error {
		if strings.TrimSpace(f.ID) == "" {
			return fmt.Errorf("fields: %s has a field with an empty id", where)
		}
		if !f.Type.Valid() {
			return fmt.Errorf("fields: %s.%s has unknown type %q", where, f.ID, f.Type)
		}
		if f.Type.HasOptions() != (len(f.Options) > 0) {
			return fmt.Errorf("fields: %s.%s options do not match type %q", where, f.ID, f.Type)
		}
		if prev, dup := owner[f.ID]; dup {
			return fmt.Errorf("fields: id %q declared by both %s and %s", f.ID, prev, where)
		}
		owner[f.ID] = where
		return nil
	}

	for _, f := range common {
		if !f.IsCommon {
			return fmt.Errorf("fields: common field %q is not flagged as common", f.ID)
		}
		if err := check("common", f); err != nil {
			return err
		}
	}

	if _, ok := specific[CategoryOther]; !ok {
		return fmt.Errorf("fields: fallback category %q has no field list", CategoryOther)
	}

	for category, list := range specific {
		for _, f := range list {
			if f.IsCommon {
				return fmt.Errorf("fields: %s.%s is category-specific but flagged as common", category, f.ID)
			}
			if err := check(string(category), f); err != nil {
				return err
			}
		}
	}
	return nil
}

// ============================================
// Lookups
// ============================================

// ResolveCategory maps category onto a registered category. The boolean is
// false when category is unknown and the "other" fallback was used.
func ResolveCategory(category string) (Category, bool) {
	c := Category(category)
	if _, ok := categoryFields[c]; ok {
		return c, true
	}
	return CategoryOther, false
}

// IsKnownCategory reports whether category is registered.
func IsKnownCategory(category string) bool {
	_, ok := ResolveCategory(category)
	return ok
}

// Categories lists every category in display order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categoryInfos))
	copy(out, categoryInfos)
	return out
}

// GetCategoryFields returns the common fields followed by the fields
// specific to category. Unknown categories get the "other" field list.
func GetCategoryFields(category string) []FieldDefinition {
	c, _ := ResolveCategory(category)
	src := categoryFields[c]
	out := make([]FieldDefinition, len(src))
	copy(out, src)
	return out
}

// GetFieldByID looks fieldID up within category's field list.
func GetFieldByID(category, fieldID string) (FieldDefinition, bool) {
	c, _ := ResolveCategory(category)
	i, ok := categoryIndex[c][fieldID]
	if !ok {
		return FieldDefinition{}, false
	}
	return categoryFields[c][i], true
}

// IsCommonField reports whether fieldID belongs to the common field set.
func IsCommonField(fieldID string) bool {
	_, ok := commonIDs[fieldID]
	return ok
}

// CommonFields returns the fields shared by every category.
func CommonFields() []FieldDefinition {
	out := make([]FieldDefinition, len(commonFields))
	copy(out, commonFields)
	return out
}

// SpecificFields returns only the category-specific part of category's list.
func SpecificFields(category string) []FieldDefinition {
	c, _ := ResolveCategory(category)
	src := specificFields[c]
	out := make([]FieldDefinition, len(src))
	copy(out, src)
	return out
}

func categoryHasField(c Category, fieldID string) bool {
	_, ok := categoryIndex[c][fieldID]
	return ok
}
