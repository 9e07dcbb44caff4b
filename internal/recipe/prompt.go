package recipe

import (
	"fmt"
	"strings"

	"mealmind/internal/pantry"
)

// GenerateRequest holds the constraints for generating recipes from a pantry.
type GenerateRequest struct {
	Cost  string `json:"cost"`
	Time  string `json:"time"`
	Skill string `json:"skill"`
	Notes string `json:"notes"`
}

// GeneratedCount is how many recipes the model is asked for.
const GeneratedCount = 3

// BuildGeneratePrompt asks the model for recipes made mostly from the pantry.
// Its reply is read by ParseGenerated.
func BuildGeneratePrompt(items []pantry.Item, req GenerateRequest) string {
	var available []string
	for _, item := range pantry.Visible(items) {
		available = append(available, fmt.Sprintf("%s %s", item.Quantity, item.Name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional chef. I have these items in my pantry: %s.\n\n", strings.Join(available, ", "))
	fmt.Fprintf(&b, "Please create %d distinct recipes I can make using primarily these ingredients.\n", GeneratedCount)
	b.WriteString("You can assume I have basic staples like oil, salt, pepper, and water.\n\n")
	b.WriteString("Constraints:\n")
	fmt.Fprintf(&b, "- Cost: %s (if 'all', decide reasonably)\n", orAll(req.Cost))
	fmt.Fprintf(&b, "- Time: %s (if 'all', decide reasonably)\n", orAll(req.Time))
	fmt.Fprintf(&b, "- Skill Level: %s (if 'all', decide reasonably)\n\n", orAll(req.Skill))
	fmt.Fprintf(&b, "USER SPECIAL REQUEST: %q\n", req.Notes)
	b.WriteString("(Please try to respect this request (e.g. \"spicy\", \"vegan\", \"soup\") if possible using the ingredients provided).\n\n")
	b.WriteString("IMPORTANT: Respond ONLY with a valid JSON array. Do not include markdown formatting like ```json.\n")
	b.WriteString("Each object in the array must have these fields:\n")
	b.WriteString("- name (string)\n")
	b.WriteString("- cost (string: 'low', 'medium', or 'high')\n")
	b.WriteString("- time (number: minutes)\n")
	b.WriteString("- skillLevel (string: 'beginner', 'intermediate', or 'advanced')\n")
	b.WriteString("- ingredients (array of strings, include quantities)\n")
	b.WriteString("- instructions (string: full cooking steps)\n")
	return b.String()
}

func orAll(v string) string {
	if strings.TrimSpace(v) == "" {
		return Any
	}
	return v
}
