package fields

import "slices"

// Direction is the way MoveField shifts a field.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Valid reports whether d is up or down.
func (d Direction) Valid() bool {
	return d == DirectionUp || d == DirectionDown
}

// The order operations below never modify their input slice and never look
// at field values. Hiding a field only drops it from the order.

// AddField appends fieldID to the end of order unless it is already there.
func AddField(order []string, fieldID string) []string {
	out := slices.Clone(order)
	if slices.Contains(out, fieldID) {
		return out
	}
	return append(out, fieldID)
}

// ToggleField hides fieldID if it is visible and shows it at the end
// otherwise.
func ToggleField(order []string, fieldID string) []string {
	if i := slices.Index(order, fieldID); i >= 0 {
		out := slices.Clone(order)
		return slices.Delete(out, i, i+1)
	}
	return AddField(order, fieldID)
}

// MoveField swaps fieldID with its neighbour in direction. Moving the first
// field up, the last field down or an absent field returns an equal copy.
func MoveField(order []string, fieldID string, direction Direction) []string {
	out := slices.Clone(order)
	i := slices.Index(out, fieldID)
	if i < 0 {
		return out
	}

	j := i
	switch direction {
	case DirectionUp:
		j = i - 1
	case DirectionDown:
		j = i + 1
	}
	if j < 0 || j >= len(out) || j == i {
		return out
	}
	out[i], out[j] = out[j], out[i]
	return out
}

// SetFieldPosition moves fieldID to the 1-based position, clamped to the
// bounds of order.
func SetFieldPosition(order []string, fieldID string, position int) []string {
	out := slices.Clone(order)
	i := slices.Index(out, fieldID)
	if i < 0 {
		return out
	}

	position = max(1, min(position, len(out)))
	out = slices.Delete(out, i, i+1)
	return slices.Insert(out, position-1, fieldID)
}

// FieldPosition returns the 1-based position of fieldID, or 0 if hidden.
func FieldPosition(order []string, fieldID string) int {
	return slices.Index(order, fieldID) + 1
}

// VisibleFields resolves order into definitions of category. Ids with no
// definition in category are skipped.
func VisibleFields(category string, order []string) []FieldDefinition {
	out := make([]FieldDefinition, 0, len(order))
	for _, id := range order {
		if def, ok := GetFieldByID(category, id); ok {
			out = append(out, def)
		}
	}
	return out
}

// AvailableFields lists the fields of category that are not in order, in
// catalog order.
func AvailableFields(category string, order []string) []FieldDefinition {
	var out []FieldDefinition
	for _, def := range GetCategoryFields(category) {
		if !slices.Contains(order, def.ID) {
			out = append(out, def)
		}
	}
	return out
}

const defaultSpecificFields = 3

// DefaultFieldOrder is the order a new project of category starts with:
// every common field, then the first few category-specific fields.
func DefaultFieldOrder(category string) []string {
	specific := SpecificFields(category)
	order := make([]string, 0, len(commonFields)+defaultSpecificFields)
	for _, f := range commonFields {
		order = append(order, f.ID)
	}
	for i, f := range specific {
		if i == defaultSpecificFields {
			break
		}
		order = append(order, f.ID)
	}
	return order
}
