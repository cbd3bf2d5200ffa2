package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/Orio77/coctail-mcp/internal/domain"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cocktails.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoad_Success(t *testing.T) {
	path := writeCatalog(t, `[
		{
			"id": 11000,
			"name": "Mojito",
			"category": "Cocktail",
			"tags": ["IBA", "Classic"],
			"instructions": "Muddle mint with sugar and lime juice.",
			"imageUrl": "https://example.com/mojito.jpg",
			"ingredients": [
				{"id": 1, "name": "Light rum", "alcoholic": true, "type": "Spirit"},
				{"id": 2, "name": "Mint", "description": "Fresh mint leaves"}
			]
		},
		{
			"id": 11001,
			"name": "Daiquiri",
			"ingredients": [
				{"id": 1, "name": "Light rum", "alcoholic": true, "type": "Spirit"},
				{"id": 3, "name": "Lime juice"}
			]
		}
	]`)

	catalog, err := New(path, zap.NewNop()).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(catalog.Cocktails) != 2 {
		t.Fatalf("got %d cocktails, want 2", len(catalog.Cocktails))
	}

	mojito := catalog.Cocktails[0]
	if mojito.ID != 11000 || mojito.Name != "Mojito" || mojito.Category != "Cocktail" {
		t.Errorf("unexpected cocktail: %+v", mojito)
	}
	if len(mojito.Ingredients) != 2 || mojito.Ingredients[0] != "Light rum" {
		t.Errorf("unexpected ingredient names: %v", mojito.Ingredients)
	}

	// Light rum appears in both recipes but only once in the flat list.
	if len(catalog.Ingredients) != 3 {
		t.Fatalf("got %d ingredients, want 3", len(catalog.Ingredients))
	}
	rum := catalog.Ingredients[0]
	if rum.ID != 1 || !rum.Alcoholic || rum.Type != "Spirit" {
		t.Errorf("unexpected ingredient: %+v", rum)
	}
}

func TestLoad_SkipsInvalidRows(t *testing.T) {
	path := writeCatalog(t, `[
		{"id": 0, "name": "no id"},
		{"id": 5, "name": ""},
		{"id": 11000, "name": "Mojito", "ingredients": [{"id": 0, "name": "nameless id"}]}
	]`)

	catalog, err := New(path, zap.NewNop()).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(catalog.Cocktails) != 1 || catalog.Cocktails[0].Name != "Mojito" {
		t.Errorf("unexpected cocktails: %+v", catalog.Cocktails)
	}
	if len(catalog.Ingredients) != 0 {
		t.Errorf("ingredient without id should be dropped from the flat list: %+v", catalog.Ingredients)
	}
	// The name still contributes to the recipe's ingredient names.
	if len(catalog.Cocktails[0].Ingredients) != 1 {
		t.Errorf("unexpected ingredient names: %v", catalog.Cocktails[0].Ingredients)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := New("", zap.NewNop()).Load()
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Errorf("Load() error = %v, want ErrConfiguration", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop()).Load()
	if err == nil {
		t.Fatal("Load() succeeded for a missing file")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeCatalog(t, `{"not": "an array"}`)
	if _, err := New(path, zap.NewNop()).Load(); err == nil {
		t.Fatal("Load() succeeded for malformed input")
	}
}
