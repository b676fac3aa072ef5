package service

import (
	"context"
	"strings"

	"github.com/Lixing-Zhang/foodie-express/internal/models"
	"github.com/Lixing-Zhang/foodie-express/internal/repository"
)

// CategoryAll selects every category of a menu
const CategoryAll = "all"

// Menu is one restaurant's menu, filtered by category
type Menu struct {
	Restaurant models.Restaurant `json:"restaurant"`
	Categories []string          `json:"categories"`
	Items      []models.MenuItem `json:"items"`
}

// CatalogService handles business logic for restaurants and menus
type CatalogService struct {
	repo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// SearchRestaurants returns restaurants whose name, description, or any
// cuisine contains query, ignoring case. A blank query matches everything;
// otherwise surrounding spaces are part of the match.
func (s *CatalogService) SearchRestaurants(ctx context.Context, query string) ([]models.Restaurant, error) {
	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(query) == "" {
		return restaurants, nil
	}
	q := strings.ToLower(query)

	matches := make([]models.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if matchesRestaurant(r, q) {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

func matchesRestaurant(r models.Restaurant, q string) bool {
	if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Description), q) {
		return true
	}
	for _, c := range r.Cuisine {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}

// GetRestaurant returns a restaurant by ID
func (s *CatalogService) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	return s.repo.GetRestaurant(ctx, id)
}

// Menu returns the menu of an open restaurant. An empty category or "all"
// returns every item.
func (s *CatalogService) Menu(ctx context.Context, restaurantID, category string) (*Menu, error) {
	restaurant, err := s.repo.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !restaurant.IsOpen {
		return nil, ErrRestaurantClosed
	}

	items, err := s.repo.ListMenuItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	categories := []string{CategoryAll}
	seen := map[string]bool{}
	for _, item := range items {
		if !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}

	if category != "" && category != CategoryAll {
		filtered := make([]models.MenuItem, 0, len(items))
		for _, item := range items {
			if item.Category == category {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	return &Menu{
		Restaurant: *restaurant,
		Categories: categories,
		Items:      items,
	}, nil
}

// GetMenuItem returns a menu item by ID
func (s *CatalogService) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}
