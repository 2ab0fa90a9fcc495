package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

const recipesJSON = `[
  {"id": 1, "tier": 1, "time": 60, "nanocraftable": true,
   "ingredients": [{"id": 10, "quantity": 2}],
   "products": [{"id": 100, "quantity": 1}]},
  {"id": 2, "tier": 1, "time": 120, "nanocraftable": false,
   "ingredients": [{"id": 10, "quantity": 5}, {"id": 11, "quantity": 1}],
   "products": [{"id": 101, "quantity": 1}]},
  {"id": 3, "tier": 2, "time": 300, "nanocraftable": false,
   "ingredients": [{"id": 100, "quantity": 3}],
   "products": [{"id": 200, "quantity": 1}, {"id": 100, "quantity": 1}]}
]`

const resourcesJSON = `[
  {"id": 10, "name": "Hematite", "tier": 1},
  {"id": 11, "name": "Bauxite", "tier": 1},
  {"id": 20, "name": "Chromite", "tier": 2}
]`

func tempStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	recipes := filepath.Join(dir, "recipes.json")
	resources := filepath.Join(dir, "resources.json")
	if err := os.WriteFile(recipes, []byte(recipesJSON), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(resources, []byte(resourcesJSON), 0644); err != nil {
		t.Fatal(err)
	}
	return NewStore(recipes, resources)
}

func TestStore_RecipesByTier(t *testing.T) {
	s := tempStore(t)

	tier1 := s.RecipesByTier(1)
	if len(tier1) != 2 {
		t.Fatalf("tier 1 recipes = %d, want 2", len(tier1))
	}
	// catalog order preserved
	if tier1[0].ID != 1 || tier1[1].ID != 2 {
		t.Errorf("tier 1 order = [%d, %d], want [1, 2]", tier1[0].ID, tier1[1].ID)
	}

	if got := s.RecipesByTier(3); len(got) != 0 {
		t.Errorf("tier 3 recipes = %d, want 0", len(got))
	}
}

func TestStore_RecipesWithProduct(t *testing.T) {
	s := tempStore(t)

	got := s.RecipesWithProduct(100)
	if len(got) != 2 {
		t.Fatalf("recipes producing 100 = %d, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("recipe ids = [%d, %d], want [1, 3]", got[0].ID, got[1].ID)
	}
}

func TestStore_RecipesWithIngredient(t *testing.T) {
	s := tempStore(t)

	if got := s.RecipesWithIngredient(10); len(got) != 2 {
		t.Errorf("recipes using 10 = %d, want 2", len(got))
	}
	if got := s.RecipesWithIngredientTier(10, 1); len(got) != 2 {
		t.Errorf("tier-1 recipes using 10 = %d, want 2", len(got))
	}
	if got := s.RecipesWithIngredientTier(100, 1); len(got) != 0 {
		t.Errorf("tier-1 recipes using 100 = %d, want 0", len(got))
	}
	if got := s.RecipesWithIngredientTier(100, 2); len(got) != 1 {
		t.Errorf("tier-2 recipes using 100 = %d, want 1", len(got))
	}
}

func TestStore_Resources(t *testing.T) {
	s := tempStore(t)

	if got := s.ResourcesByTier(1); len(got) != 2 {
		t.Errorf("tier 1 resources = %d, want 2", len(got))
	}

	r, ok := s.Resource(20)
	if !ok || r.Name != "Chromite" {
		t.Errorf("Resource(20) = (%v, %t), want Chromite", r, ok)
	}
	if _, ok := s.Resource(999); ok {
		t.Error("Resource(999) found for unknown id")
	}
}

func TestStore_MissingFilesDegradeToEmpty(t *testing.T) {
	s := NewStore("does/not/exist.json", "also/missing.json")

	if got := s.Recipes(); len(got) != 0 {
		t.Errorf("Recipes from missing file = %d entries, want 0", len(got))
	}
	if got := s.RecipesByTier(1); len(got) != 0 {
		t.Errorf("RecipesByTier from missing file = %d entries, want 0", len(got))
	}
	if got := s.Resources(); len(got) != 0 {
		t.Errorf("Resources from missing file = %d entries, want 0", len(got))
	}
}
