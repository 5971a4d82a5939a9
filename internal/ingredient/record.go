package ingredient

import "strings"

// DefaultQuantity is used when a fragment carries no leading quantity
const DefaultQuantity = "1"

// Record is a single ingredient parsed out of free text
type Record struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// String renders the record as "<quantity> <unit> <name> (<notes>)", dropping the
// unit and notes segments when they are empty.
func (r Record) String() string {
	parts := []string{r.Quantity}
	if r.Unit != "" {
		parts = append(parts, r.Unit)
	}
	parts = append(parts, r.Name)
	if r.Notes != "" {
		parts = append(parts, "("+r.Notes+")")
	}
	return strings.Join(parts, " ")
}

// Format renders records as display lines in input order
func Format(records []Record) []string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, r.String())
	}
	return lines
}
