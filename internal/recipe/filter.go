package recipe

import "strings"

// Any matches every value of a filter field.
const Any = "all"

// Time buckets, in minutes.
const (
	TimeQuick  = "quick"
	TimeMedium = "medium"
	TimeLong   = "long"
)

// Filter selects recipes the way the discovery view does. Empty fields and
// Any match everything.
type Filter struct {
	Search string `form:"search" json:"search"`
	Cost   string `form:"cost" json:"cost"`
	Time   string `form:"time" json:"time"`
	Skill  string `form:"skill" json:"skill"`
}

// Match reports whether r passes every field of the filter.
func (f Filter) Match(r Recipe) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(f.Search)) {
		return false
	}
	if !isAny(f.Cost) && r.Cost != strings.ToLower(f.Cost) {
		return false
	}
	if !isAny(f.Skill) && r.SkillLevel != strings.ToLower(f.Skill) {
		return false
	}
	return isAny(f.Time) || inTimeBucket(strings.ToLower(f.Time), r.Time)
}

// Apply returns the matching recipes in their original order.
func (f Filter) Apply(recipes []Recipe) []Recipe {
	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Names lists recipe names in order.
func Names(recipes []Recipe) []string {
	names := make([]string, 0, len(recipes))
	for _, r := range recipes {
		names = append(names, r.Name)
	}
	return names
}

func isAny(v string) bool {
	return v == "" || strings.EqualFold(v, Any)
}

func inTimeBucket(bucket string, minutes int) bool {
	switch bucket {
	case TimeQuick:
		return minutes <= 30
	case TimeMedium:
		return minutes > 30 && minutes <= 60
	case TimeLong:
		return minutes > 60
	default:
		return false
	}
}
