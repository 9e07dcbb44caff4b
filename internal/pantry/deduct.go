package pantry

// Deduct subtracts the amounts named in a recipe's ingredient lines from the
// pantry and returns the new pantry with the number of items that changed.
//
// Each item is checked against the first ingredient line that mentions it.
// Items with no such line, or where either side has no number, are copied
// unchanged. Amounts never drop below zero and units are not converted.
// The result always has the same length and order as items; items itself is
// not modified.
func Deduct(ingredients []string, items []Item) ([]Item, int) {
	out := make([]Item, len(items))
	changed := 0

	for i, item := range items {
		out[i] = item

		line, ok := firstMatch(item.Name, ingredients)
		if !ok {
			continue
		}
		recipeQty, ok := ParseQuantity(line)
		if !ok {
			continue
		}
		pantryQty, ok := ParseQuantity(item.Quantity)
		if !ok {
			continue
		}

		remaining := max(0, pantryQty-recipeQty)
		out[i].Quantity = replaceQuantity(item.Quantity, remaining)
		if out[i].Quantity != item.Quantity {
			changed++
		}
	}

	return out, changed
}

func firstMatch(name string, ingredients []string) (string, bool) {
	for _, line := range ingredients {
		if Matches(name, line) {
			return line, true
		}
	}
	return "", false
}
