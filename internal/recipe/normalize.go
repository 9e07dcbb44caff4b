package recipe

import (
	"encoding/json"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// UntitledName replaces a missing recipe name.
	UntitledName = "Untitled Recipe"
	// NoInstructions replaces missing instructions.
	NoInstructions = "No instructions provided."
	// DefaultSkillLevel replaces a missing skill level.
	DefaultSkillLevel = "beginner"

	minDefaultTime = 15
	maxDefaultTime = 90
)

// signedNumber is the first number in a time string, sign included, so
// "-5 min" is rejected rather than read as 5.
var signedNumber = regexp.MustCompile(`[-+]?\d+(\.\d+)?`)

// CostTiers are the cost values a recipe can carry.
var CostTiers = []string{"low", "medium", "high"}

// Rand is the randomness the normalizer draws defaults from.
type Rand interface {
	Intn(n int) int
}

// Normalizer turns raw catalog records of any shape into canonical recipes.
// It is safe for concurrent use.
type Normalizer struct {
	mu  sync.Mutex
	rnd Rand
}

// NewNormalizer creates a Normalizer. A nil source falls back to a
// time-seeded one.
func NewNormalizer(rnd Rand) *Normalizer {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Normalizer{rnd: rnd}
}

// Normalize maps one raw record to a Recipe. It never fails: every missing or
// unusable field is replaced by a default.
func (n *Normalizer) Normalize(id string, raw map[string]any) Recipe {
	r := Recipe{
		ID:           id,
		Name:         firstString(raw, "name", "title"),
		Ingredients:  ingredientLines(raw["ingredients"]),
		Instructions: instructions(raw),
		SkillLevel:   strings.ToLower(firstString(raw, "skillLevel")),
		Cost:         strings.ToLower(firstString(raw, "cost", "costOfIngredients")),
	}
	if r.Name == "" {
		r.Name = UntitledName
	}
	if r.SkillLevel == "" {
		r.SkillLevel = DefaultSkillLevel
	}
	if path, ok := raw["imagePath"].(string); ok {
		r.ImagePath = path
	}

	r.Time = positiveInt(raw["time"])
	if r.Time == 0 {
		r.Time = positiveInt(raw["timeTakenToCook"])
	}

	if r.Time == 0 || r.Cost == "" {
		n.mu.Lock()
		if r.Time == 0 {
			r.Time = minDefaultTime + n.rnd.Intn(maxDefaultTime-minDefaultTime+1)
		}
		if r.Cost == "" {
			r.Cost = CostTiers[n.rnd.Intn(len(CostTiers))]
		}
		n.mu.Unlock()
	}

	return r
}

// firstString returns the first non-blank string found under keys.
func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := raw[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func ingredientLines(v any) []string {
	lines := []string{}
	items, ok := v.([]any)
	if !ok {
		if strs, ok := v.([]string); ok {
			return append(lines, strs...)
		}
		return lines
	}

	for _, item := range items {
		switch it := item.(type) {
		case string:
			lines = append(lines, it)
		case map[string]any:
			var parts []string
			for _, key := range []string{"quantity", "unit", "name"} {
				if s, ok := text(it[key]); ok && s != "" {
					parts = append(parts, s)
				}
			}
			lines = append(lines, strings.Join(parts, " "))
		default:
			if s, ok := text(it); ok && s != "" {
				lines = append(lines, s)
			}
		}
	}
	return lines
}

func instructions(raw map[string]any) string {
	if s := firstString(raw, "instructions"); s != "" {
		return s
	}
	for _, key := range []string{"instructions", "steps"} {
		if joined := joinSteps(raw[key]); joined != "" {
			return joined
		}
	}
	return NoInstructions
}

func joinSteps(v any) string {
	steps, ok := v.([]any)
	if !ok {
		if strs, ok := v.([]string); ok {
			return strings.Join(strs, " ")
		}
		return ""
	}
	parts := make([]string, 0, len(steps))
	for _, step := range steps {
		if s, ok := step.(string); ok && s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// positiveInt coerces v to a positive integer, or returns 0.
func positiveInt(v any) int {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		m := signedNumber.FindString(t)
		if m == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || f < 1 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

func text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}
