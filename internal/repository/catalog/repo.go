// Package catalog loads the cocktail data set from its JSON file.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Orio77/coctail-mcp/internal/domain"
)

// Repo reads the catalog file and flattens it into domain records.
type Repo struct {
	path   string
	logger *zap.Logger
}

// New creates a catalog repository for the given data file.
func New(path string, logger *zap.Logger) *Repo {
	return &Repo{path: path, logger: logger}
}

// Load parses the catalog file. Rows without an id or name are skipped
// with a warning rather than failing the whole load; nested ingredients
// are deduplicated by id across all cocktails.
func (r *Repo) Load() (*domain.Catalog, error) {
	if r.path == "" {
		return nil, fmt.Errorf("%w: catalog data path is not set", domain.ErrConfiguration)
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", r.path, err)
	}

	var rows []cocktailRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", r.path, err)
	}

	catalog := &domain.Catalog{}
	seen := make(map[int]bool)

	for i, row := range rows {
		if row.ID == 0 || row.Name == "" {
			r.logger.Warn("skipping invalid catalog row",
				zap.Int("row", i),
				zap.Int("id", row.ID),
				zap.String("name", row.Name),
			)
			continue
		}

		cocktail := domain.Cocktail{
			ID:           row.ID,
			Name:         row.Name,
			Category:     row.Category,
			Tags:         row.Tags,
			Instructions: row.Instructions,
			ImageURL:     row.ImageURL,
		}
		for _, ing := range row.Ingredients {
			if ing.Name != "" {
				cocktail.Ingredients = append(cocktail.Ingredients, ing.Name)
			}
			if ing.ID == 0 || ing.Name == "" || seen[ing.ID] {
				continue
			}
			seen[ing.ID] = true
			catalog.Ingredients = append(catalog.Ingredients, domain.Ingredient{
				ID:          ing.ID,
				Name:        ing.Name,
				Description: ing.Description,
				Alcoholic:   ing.Alcoholic,
				Type:        ing.Type,
				ImageURL:    ing.ImageURL,
			})
		}
		catalog.Cocktails = append(catalog.Cocktails, cocktail)
	}

	r.logger.Info("loaded catalog",
		zap.String("path", r.path),
		zap.Int("cocktails", len(catalog.Cocktails)),
		zap.Int("ingredients", len(catalog.Ingredients)),
	)
	return catalog, nil
}
