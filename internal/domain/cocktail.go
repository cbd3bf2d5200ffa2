package domain

import (
	"fmt"
	"strings"
)

// Cocktail is one catalog recipe. Ingredients holds ingredient names only;
// full ingredient records live in Ingredient.
type Cocktail struct {
	ID           int
	Name         string
	Category     string
	Tags         []string
	Instructions string
	ImageURL     string
	Ingredients  []string
}

// VectorID returns the identifier used for this cocktail in the vector index.
func (c *Cocktail) VectorID() string {
	return fmt.Sprintf("cocktail_%d", c.ID)
}

// EmbedText renders the cocktail as the text handed to the embedding model.
func (c *Cocktail) EmbedText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cocktail: %s", c.Name)
	if c.Category != "" {
		fmt.Fprintf(&b, "\nCategory: %s", c.Category)
	}
	if len(c.Tags) > 0 {
		fmt.Fprintf(&b, "\nTags: %s", strings.Join(c.Tags, ", "))
	}
	if len(c.Ingredients) > 0 {
		fmt.Fprintf(&b, "\nIngredients: %s", strings.Join(c.Ingredients, ", "))
	}
	if c.Instructions != "" {
		fmt.Fprintf(&b, "\nInstructions: %s", c.Instructions)
	}
	return b.String()
}

// Metadata returns the fields stored with the cocktail vector.
func (c *Cocktail) Metadata() map[string]any {
	return map[string]any{
		"type":             "cocktail",
		"cocktail_id":      c.ID,
		"name":             c.Name,
		"tags":             c.Tags,
		"instructions":     c.Instructions,
		"image_url":        c.ImageURL,
		"ingredient_names": c.Ingredients,
	}
}

// Ingredient is one distinct catalog ingredient.
type Ingredient struct {
	ID          int
	Name        string
	Description string
	Alcoholic   bool
	Type        string
	ImageURL    string
}

// VectorID returns the identifier used for this ingredient in the vector index.
func (i *Ingredient) VectorID() string {
	return fmt.Sprintf("ingredient_%d", i.ID)
}

// EmbedText renders the ingredient as the text handed to the embedding model.
func (i *Ingredient) EmbedText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ingredient: %s", i.Name)
	if i.Type != "" {
		fmt.Fprintf(&b, "\nType: %s", i.Type)
	}
	if i.Alcoholic {
		b.WriteString("\nAlcoholic: yes")
	}
	if i.Description != "" {
		fmt.Fprintf(&b, "\nDescription: %s", i.Description)
	}
	return b.String()
}

// Metadata returns the fields stored with the ingredient vector.
func (i *Ingredient) Metadata() map[string]any {
	return map[string]any{
		"type":            "ingredient",
		"ingredient_id":   i.ID,
		"name":            i.Name,
		"description":     i.Description,
		"alcohol":         i.Alcoholic,
		"ingredient_type": i.Type,
		"image_url":       i.ImageURL,
	}
}

// Catalog is the parsed cocktail data set.
type Catalog struct {
	Cocktails   []Cocktail
	Ingredients []Ingredient
}
