package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrMalformedGeneration is returned when model output is not a JSON array of
// recipe objects.
var ErrMalformedGeneration = errors.New("generated recipes are not a JSON array")

// GeneratedIDPrefix marks recipes that came from the model rather than the
// catalog.
const GeneratedIDPrefix = "ai-gen-"

// ParseGenerated decodes the recipe generator's reply. Markdown fences are
// removed first; each element then goes through the normalizer so partial
// objects still yield complete recipes.
func (n *Normalizer) ParseGenerated(raw string) ([]Recipe, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var records []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, err)
	}

	recipes := make([]Recipe, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		recipes = append(recipes, n.Normalize(GeneratedIDPrefix+uuid.NewString(), rec))
	}
	return recipes, nil
}
