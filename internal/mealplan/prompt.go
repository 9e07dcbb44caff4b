package mealplan

import (
	"fmt"
	"strings"

	"mealmind/internal/pantry"
)

// Preferences narrow the plan. Empty fields mean "all".
type Preferences struct {
	Budget string `json:"budget"`
	Time   string `json:"time"`
	Skill  string `json:"skill"`
}

// Weekdays covered by a generated plan.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// BuildPrompt asks the model for a Monday to Friday plan that only uses the
// given recipe names.
func BuildPrompt(items []pantry.Item, recipeNames []string, prefs Preferences) string {
	var available []string
	for _, item := range pantry.Visible(items) {
		available = append(available, fmt.Sprintf("%s of %s", item.Quantity, item.Name))
	}
	ingredients := strings.Join(available, ", ")
	if ingredients == "" {
		ingredients = "None listed."
	}
	names := "[" + strings.Join(recipeNames, ", ") + "]"

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert chef and meal planner. Generate a %d-day meal plan (%s to %s) based on the following:\n\n",
		len(Weekdays), Weekdays[0], Weekdays[len(Weekdays)-1])
	fmt.Fprintf(&b, "Available Ingredients (for reference): %s\n", ingredients)
	fmt.Fprintf(&b, "Available Recipes in Database: %s\n\n", names)
	b.WriteString("Instructions:\n")
	fmt.Fprintf(&b, "1. For the meal plan, you MUST ONLY use recipe names found in the %s list.\n", names)
	b.WriteString("2. If a recipe from the list is not suitable for a specific meal (e.g., a \"Dinner\" recipe for \"Breakfast\"), " +
		"suggest a generic snack or simple item like \"Toast and Jam\" or \"Quick Salad\" if no appropriate recipe name is available for that slot.\n\n")
	fmt.Fprintf(&b, "Budget Preference: %s\n", orAll(prefs.Budget))
	fmt.Fprintf(&b, "Time Preference: %s\n", orAll(prefs.Time))
	fmt.Fprintf(&b, "Skill Level: %s\n\n", orAll(prefs.Skill))
	b.WriteString("The output MUST be a JSON object with the following structure:\n")
	b.WriteString(`{"plan": [{"day": "Monday", "breakfast": "Recipe Name for Breakfast", "lunch": "Recipe Name for Lunch", "dinner": "Recipe Name for Dinner", "snack": "Snack Idea"}]}`)
	fmt.Fprintf(&b, "\nInclude one entry per day from %s to %s. Do not include any introductory or concluding text outside of the JSON block.\n",
		Weekdays[0], Weekdays[len(Weekdays)-1])
	return b.String()
}

func orAll(v string) string {
	if strings.TrimSpace(v) == "" {
		return "all"
	}
	return v
}
