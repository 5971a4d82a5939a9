package toolbox

import (
	"fmt"
	"strings"

	"github.com/pageza/alchemorsel-v2/assistant/internal/recipe"
)

func timing(r recipe.Recipe) string {
	parts := []string{"Prep: " + orUnknown(r.PrepTime)}
	if r.CookTime != "" {
		parts = append(parts, "Cook: "+r.CookTime)
	}
	if r.Servings > 0 {
		parts = append(parts, fmt.Sprintf("Serves: %d", r.Servings))
	}
	return strings.Join(parts, " | ")
}

// summaryLines is the block shown for each search hit
func summaryLines(r recipe.Recipe) []string {
	lines := []string{
		"",
		"* " + r.Title,
		"  " + timing(r),
		"  Ingredients:",
	}
	for _, ing := range r.Ingredients {
		lines = append(lines, "    - "+ing)
	}
	return lines
}

func detailLines(r recipe.Recipe) []string {
	lines := []string{"## " + r.Title, timing(r)}
	if r.Cuisine != "" {
		lines = append(lines, "Cuisine: "+r.Cuisine)
	}
	if len(r.Tags) > 0 {
		lines = append(lines, "Tags: "+strings.Join(r.Tags, ", "))
	}

	lines = append(lines, "", "Ingredients:")
	for _, ing := range r.Ingredients {
		lines = append(lines, "- "+ing)
	}

	lines = append(lines, "", "Instructions:")
	for i, step := range r.Steps {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, step))
	}
	return lines
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
