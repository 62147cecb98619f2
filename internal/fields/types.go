// Package fields implements the category-driven project metadata system:
// a static catalog of field definitions per project category, pure
// operations over a project's visible field order, the category migration
// reconciler and the completeness scorer.
//
// Nothing in this package performs I/O. Values and field orders are passed
// in by the caller and handed back for persistence.
package fields

import "errors"

var (
	ErrInvalidValue       = errors.New("invalid field value")
	ErrNoPendingMigration = errors.New("no category change awaiting confirmation")
	ErrMigrationPending   = errors.New("a category change is awaiting confirmation")
)

// ============================================
// Field Types
// ============================================

// FieldType is the kind of input a field renders as.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multi-select"
	FieldTypeURL         FieldType = "url"
	FieldTypeNumber      FieldType = "number"

	// Reserved. No catalog field uses these yet.
	FieldTypeDate     FieldType = "date"
	FieldTypeFile     FieldType = "file"
	FieldTypeRichText FieldType = "rich-text"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeSelect, FieldTypeMultiSelect,
		FieldTypeURL, FieldTypeNumber, FieldTypeDate, FieldTypeFile, FieldTypeRichText:
		return true
	}
	return false
}

// Reserved reports whether t is a placeholder type with no editor support.
func (t FieldType) Reserved() bool {
	return t == FieldTypeDate || t == FieldTypeFile || t == FieldTypeRichText
}

// HasOptions reports whether fields of this type carry an option list.
func (t FieldType) HasOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeMultiSelect
}

// FieldOption is a single choice of a select or multi-select field.
type FieldOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldDefinition describes one metadata field. Definitions are owned by the
// catalog and must be treated as read-only.
type FieldDefinition struct {
	ID          string        `json:"id"`
	Label       string        `json:"label"`
	Type        FieldType     `json:"type"`
	IsCommon    bool          `json:"isCommon"`
	Options     []FieldOption `json:"options,omitempty"`
	MaxLength   int           `json:"maxLength,omitempty"`
	Placeholder string        `json:"placeholder,omitempty"`
	Description string        `json:"description,omitempty"`
}

// HasOption reports whether value is one of the field's option values.
func (d FieldDefinition) HasOption(value string) bool {
	for _, o := range d.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// ============================================
// Categories
// ============================================

// Category classifies a project and selects its specific fields.
type Category string

const (
	CategoryWeb        Category = "web"
	CategoryMobile     Category = "mobile"
	CategoryDesktop    Category = "desktop"
	CategoryBackend    Category = "backend"
	CategoryCLI        Category = "cli"
	CategoryLibrary    Category = "library"
	CategoryGame       Category = "game"
	CategoryAIML       Category = "ai-ml"
	CategoryData       Category = "data"
	CategoryDevOps     Category = "devops"
	CategoryEmbedded   Category = "embedded"
	CategoryBlockchain Category = "blockchain"
	CategoryOther      Category = "other"
)

// CategoryInfo is the display metadata of a category.
type CategoryInfo struct {
	Value       Category `json:"value"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
}

// Values is the per-project bag of field values keyed by field id. A nil
// Values is an empty bag.
type Values map[string]any

// Clone returns a shallow copy of v. The result is never nil.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
