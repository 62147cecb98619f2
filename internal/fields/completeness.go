package fields

import "math"

// CompletenessBreakdown explains a completeness score.
type CompletenessBreakdown struct {
	Score   int      `json:"score"`
	Filled  int      `json:"filled"`
	Total   int      `json:"total"`
	Missing []string `json:"missing"`
}

// CalculateCompletenessScore returns the share of visible fields holding
// data as a whole percentage. Every visible field weighs the same.
func CalculateCompletenessScore(visibleFieldIDs []string, values Values) int {
	return CompletenessDetails(visibleFieldIDs, values).Score
}

// CompletenessDetails is CalculateCompletenessScore with the counts behind
// it. Repeated ids are counted once; an empty visible set scores 0.
func CompletenessDetails(visibleFieldIDs []string, values Values) CompletenessBreakdown {
	b := CompletenessBreakdown{Missing: []string{}}
	seen := make(map[string]struct{}, len(visibleFieldIDs))
	for _, id := range visibleFieldIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		b.Total++
		if HasData(values[id]) {
			b.Filled++
		} else {
			b.Missing = append(b.Missing, id)
		}
	}
	if b.Total == 0 {
		return b
	}
	b.Score = int(math.Round(float64(b.Filled) / float64(b.Total) * 100))
	return b
}
