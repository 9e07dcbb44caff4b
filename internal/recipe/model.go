package recipe

// Recipe is the canonical recipe shape served by the API.
type Recipe struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Cost         string   `json:"cost"`
	Time         int      `json:"time"`
	SkillLevel   string   `json:"skillLevel"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	ImagePath    string   `json:"imagePath,omitempty"`
}
