package catalog

// cocktailRow mirrors one record of the catalog JSON file.
type cocktailRow struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Tags         []string        `json:"tags"`
	Instructions string          `json:"instructions"`
	ImageURL     string          `json:"imageUrl"`
	Ingredients  []ingredientRow `json:"ingredients"`
}

// ingredientRow mirrors one nested ingredient record.
type ingredientRow struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Alcoholic   bool   `json:"alcoholic"`
	Type        string `json:"type"`
	ImageURL    string `json:"imageUrl"`
}
