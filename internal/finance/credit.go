package finance

// Rating is the display form of a credit score.
type Rating struct {
	Label      string `json:"label"`
	ColorClass string `json:"colorClass"`
	Band       string `json:"band"`
}

type creditTier struct {
	min   int
	label string
	color string
	band  string
}

// Thresholds are inclusive lower bounds, checked from the top.
var creditTiers = []creditTier{
	{750, "Excellent", "text-green-600", "750-850"},
	{700, "Good", "text-blue-600", "700-749"},
	{650, "Fair", "text-yellow-600", "650-699"},
	{600, "Poor", "text-orange-600", "600-649"},
}

var veryPoor = Rating{Label: "Very Poor", ColorClass: "text-red-600", Band: "300-599"}

// CreditRating maps a score to its label and color class.
func CreditRating(score int) Rating {
	for _, t := range creditTiers {
		if score >= t.min {
			return Rating{Label: t.label, ColorClass: t.color, Band: t.band}
		}
	}
	return veryPoor
}

// ScoreBand returns the display range the score falls in, e.g. "700-749".
func ScoreBand(score int) string {
	return CreditRating(score).Band
}
