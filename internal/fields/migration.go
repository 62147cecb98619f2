package fields

import "slices"

// maxSuggestedFields bounds MigrationPlan.NewFields.
const maxSuggestedFields = 3

// FieldStatus is a field of the current order as seen by a migration.
type FieldStatus struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	HasData bool   `json:"hasData"`
}

// MigrationPlan classifies the visible fields of a project for a change of
// category. It is computed on demand and never persisted.
//
// LostFields are hidden, not deleted: their values stay in the value bag and
// come back if the field is shown again. UnknownFields are ids of the order
// that the source category does not define and the new order drops; they
// carry no label.
type MigrationPlan struct {
	FromCategory  Category          `json:"fromCategory"`
	ToCategory    Category          `json:"toCategory"`
	KeptFields    []FieldStatus     `json:"keptFields"`
	LostFields    []FieldStatus     `json:"lostFields"`
	UnknownFields []FieldStatus     `json:"unknownFields"`
	NewFields     []FieldDefinition `json:"newFields"`
	NewFieldOrder []string          `json:"newFieldOrder"`
}

// RequiresConfirmation reports whether applying the plan would hide a
// non-common field that holds data and does not exist in the target
// category.
func (p *MigrationPlan) RequiresConfirmation() bool {
	for _, f := range append(slices.Clip(p.LostFields), p.UnknownFields...) {
		if f.HasData && !IsCommonField(f.ID) && !categoryHasField(p.ToCategory, f.ID) {
			return true
		}
	}
	return false
}

// DataBearingLostFields returns the hidden fields that still hold values,
// unknown ids included.
func (p *MigrationPlan) DataBearingLostFields() []FieldStatus {
	var out []FieldStatus
	for _, f := range append(slices.Clip(p.LostFields), p.UnknownFields...) {
		if f.HasData {
			out = append(out, f)
		}
	}
	return out
}

// AnalyzeFieldMigration classifies the fields of order for a move from one
// category to another. Kept, lost and unknown fields keep the sequence of
// order. values is only read.
func AnalyzeFieldMigration(from, to string, order []string, values Values) MigrationPlan {
	fromCategory, _ := ResolveCategory(from)
	toCategory, _ := ResolveCategory(to)

	plan := MigrationPlan{
		FromCategory:  fromCategory,
		ToCategory:    toCategory,
		KeptFields:    []FieldStatus{},
		LostFields:    []FieldStatus{},
		UnknownFields: []FieldStatus{},
		NewFields:     []FieldDefinition{},
	}

	inOrder := make(map[string]struct{}, len(order))
	for _, id := range order {
		inOrder[id] = struct{}{}

		def, ok := GetFieldByID(string(fromCategory), id)
		if !ok {
			if !IsCommonField(id) && !categoryHasField(toCategory, id) {
				plan.UnknownFields = append(plan.UnknownFields, FieldStatus{ID: id, HasData: HasData(values[id])})
			}
			continue
		}
		status := FieldStatus{ID: id, Label: def.Label, HasData: HasData(values[id])}
		if IsCommonField(id) || categoryHasField(toCategory, id) {
			plan.KeptFields = append(plan.KeptFields, status)
		} else {
			plan.LostFields = append(plan.LostFields, status)
		}
	}

	for _, def := range specificFields[toCategory] {
		if len(plan.NewFields) == maxSuggestedFields {
			break
		}
		if _, shown := inOrder[def.ID]; shown || IsCommonField(def.ID) {
			continue
		}
		plan.NewFields = append(plan.NewFields, def)
	}

	plan.NewFieldOrder = ReconcileOrder(string(toCategory), order)
	return plan
}

// ReconcileOrder keeps the ids of order that are common or belong to the
// target category, preserving their sequence.
func ReconcileOrder(to string, order []string) []string {
	toCategory, _ := ResolveCategory(to)
	out := make([]string, 0, len(order))
	for _, id := range order {
		if IsCommonField(id) || categoryHasField(toCategory, id) {
			out = append(out, id)
		}
	}
	return out
}
