package catalog

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"github.com/scheissegalo/myDU-MarketBot/internal/domain"
)

// Store is the read-only recipe and resource catalog, backed by flat JSON
// files. Data is loaded on first use and cached for the process lifetime.
// A load failure is logged and yields empty results, so market scans
// degrade to no-ops instead of crashing.
type Store struct {
	recipesPath   string
	resourcesPath string

	once      sync.Once
	recipes   []domain.Recipe
	resources []domain.Resource
}

func NewStore(recipesPath, resourcesPath string) *Store {
	return &Store{recipesPath: recipesPath, resourcesPath: resourcesPath}
}

func (s *Store) load() {
	s.once.Do(func() {
		s.recipes = loadJSON[domain.Recipe](s.recipesPath)
		s.resources = loadJSON[domain.Resource](s.resourcesPath)
		slog.Info("Catalog loaded",
			slog.Int("recipes", len(s.recipes)),
			slog.Int("resources", len(s.resources)))
	})
}

func loadJSON[T any](path string) []T {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Failed to read catalog file", slog.String("path", path), slog.Any("error", err))
		return nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		slog.Error("Failed to parse catalog file", slog.String("path", path), slog.Any("error", err))
		return nil
	}
	return out
}

// Recipes returns every catalog recipe.
func (s *Store) Recipes() []domain.Recipe {
	s.load()
	return s.recipes
}

// RecipesByTier returns the recipes of one tier, in catalog order.
func (s *Store) RecipesByTier(tier int) []domain.Recipe {
	s.load()
	var out []domain.Recipe
	for _, r := range s.recipes {
		if r.Tier == tier {
			out = append(out, r)
		}
	}
	return out
}

// RecipesWithProduct returns recipes that produce the item.
func (s *Store) RecipesWithProduct(itemID uint64) []domain.Recipe {
	s.load()
	var out []domain.Recipe
	for _, r := range s.recipes {
		for _, p := range r.Products {
			if p.ID == itemID {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// RecipesWithIngredient returns recipes that consume the item.
func (s *Store) RecipesWithIngredient(itemID uint64) []domain.Recipe {
	s.load()
	var out []domain.Recipe
	for _, r := range s.recipes {
		if recipeUses(r, itemID) {
			out = append(out, r)
		}
	}
	return out
}

// RecipesWithIngredientTier restricts RecipesWithIngredient to one tier.
func (s *Store) RecipesWithIngredientTier(itemID uint64, tier int) []domain.Recipe {
	s.load()
	var out []domain.Recipe
	for _, r := range s.recipes {
		if r.Tier == tier && recipeUses(r, itemID) {
			out = append(out, r)
		}
	}
	return out
}

func recipeUses(r domain.Recipe, itemID uint64) bool {
	for _, ing := range r.Ingredients {
		if ing.ID == itemID {
			return true
		}
	}
	return false
}

// Resources returns every catalog resource.
func (s *Store) Resources() []domain.Resource {
	s.load()
	return s.resources
}

// ResourcesByTier returns the resources of one tier.
func (s *Store) ResourcesByTier(tier int) []domain.Resource {
	s.load()
	var out []domain.Resource
	for _, r := range s.resources {
		if r.Tier == tier {
			out = append(out, r)
		}
	}
	return out
}

// Resource looks a resource up by item id.
func (s *Store) Resource(itemID uint64) (domain.Resource, bool) {
	s.load()
	for _, r := range s.resources {
		if r.ID == itemID {
			return r, true
		}
	}
	return domain.Resource{}, false
}
