package models

// Recommendation values produced by the external vision-classification
// backend. The core never calls that backend itself, it only consumes its
// output.
const (
	RecommendationRepair  = "repair"
	RecommendationReplace = "replace"
)

// Analysis is the consumed output of the external product-damage analysis:
// a repair-or-replace recommendation, an optional category hint used to
// refine a follow-up search, and an optional pre-fetched service list that
// the ranker consumes directly.
type Analysis struct {
	Recommendation string          `json:"recommendation"`
	Category       string          `json:"category,omitempty"`
	Services       []ServiceRecord `json:"services,omitempty"`
}
