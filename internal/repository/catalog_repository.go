package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/foodie-express/internal/models"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
)

// CatalogRepository defines the interface for restaurant and menu data access
type CatalogRepository interface {
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error)
	ListMenuItems(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
}

// InMemoryCatalogRepository implements CatalogRepository with static seed data.
// Listings keep seed order.
type InMemoryCatalogRepository struct {
	restaurants []models.Restaurant
	menuItems   []models.MenuItem
}

// NewInMemoryCatalogRepository creates a catalog seeded with the storefront's mock data
func NewInMemoryCatalogRepository() *InMemoryCatalogRepository {
	return NewInMemoryCatalogRepositoryWith(seedRestaurants(), seedMenuItems())
}

// NewInMemoryCatalogRepositoryWith creates a catalog over the given data
func NewInMemoryCatalogRepositoryWith(restaurants []models.Restaurant, menuItems []models.MenuItem) *InMemoryCatalogRepository {
	return &InMemoryCatalogRepository{
		restaurants: restaurants,
		menuItems:   menuItems,
	}
}

// ListRestaurants returns all restaurants
func (r *InMemoryCatalogRepository) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	restaurants := make([]models.Restaurant, len(r.restaurants))
	copy(restaurants, r.restaurants)
	return restaurants, nil
}

// GetRestaurant returns a restaurant by its ID
func (r *InMemoryCatalogRepository) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	for _, restaurant := range r.restaurants {
		if restaurant.ID == id {
			return &restaurant, nil
		}
	}
	return nil, ErrRestaurantNotFound
}

// ListMenuItems returns the menu of one restaurant
func (r *InMemoryCatalogRepository) ListMenuItems(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	items := make([]models.MenuItem, 0)
	for _, item := range r.menuItems {
		if item.RestaurantID == restaurantID {
			items = append(items, item)
		}
	}
	return items, nil
}

// GetMenuItem returns a menu item by its ID
func (r *InMemoryCatalogRepository) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	for _, item := range r.menuItems {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, ErrMenuItemNotFound
}

func seedRestaurants() []models.Restaurant {
	return []models.Restaurant{
		{
			ID:           "1",
			Name:         "Bella Italia",
			Description:  "Authentic Italian cuisine with fresh ingredients",
			Image:        "https://images.pexels.com/photos/1581384/pexels-photo-1581384.jpeg?auto=compress&cs=tinysrgb&w=800",
			Rating:       4.5,
			DeliveryTime: "25-35 min",
			DeliveryFee:  decimal.RequireFromString("2.99"),
			MinimumOrder: decimal.NewFromInt(15),
			Cuisine:      []string{"Italian", "Pizza", "Pasta"},
			IsOpen:       true,
		},
		{
			ID:           "2",
			Name:         "Spice Garden",
			Description:  "Traditional Indian flavors and aromatic spices",
			Image:        "https://images.pexels.com/photos/1640777/pexels-photo-1640777.jpeg?auto=compress&cs=tinysrgb&w=800",
			Rating:       4.3,
			DeliveryTime: "30-40 min",
			DeliveryFee:  decimal.RequireFromString("3.49"),
			MinimumOrder: decimal.NewFromInt(20),
			Cuisine:      []string{"Indian", "Curry", "Vegetarian"},
			IsOpen:       true,
		},
		{
			ID:           "3",
			Name:         "Burger Palace",
			Description:  "Gourmet burgers and crispy fries",
			Image:        "https://images.pexels.com/photos/1639557/pexels-photo-1639557.jpeg?auto=compress&cs=tinysrgb&w=800",
			Rating:       4.2,
			DeliveryTime: "20-30 min",
			DeliveryFee:  decimal.RequireFromString("2.49"),
			MinimumOrder: decimal.NewFromInt(12),
			Cuisine:      []string{"American", "Burgers", "Fast Food"},
			IsOpen:       true,
		},
		{
			ID:           "4",
			Name:         "Sushi Zen",
			Description:  "Fresh sushi and Japanese delicacies",
			Image:        "https://images.pexels.com/photos/357756/pexels-photo-357756.jpeg?auto=compress&cs=tinysrgb&w=800",
			Rating:       4.7,
			DeliveryTime: "35-45 min",
			DeliveryFee:  decimal.RequireFromString("4.99"),
			MinimumOrder: decimal.NewFromInt(25),
			Cuisine:      []string{"Japanese", "Sushi", "Asian"},
			IsOpen:       false,
		},
	}
}

func seedMenuItems() []models.MenuItem {
	return []models.MenuItem{
		// Bella Italia
		{
			ID:              "1",
			RestaurantID:    "1",
			Name:            "Margherita Pizza",
			Description:     "Classic pizza with fresh mozzarella, tomatoes, and basil",
			Price:           decimal.RequireFromString("14.99"),
			Image:           "https://images.pexels.com/photos/315755/pexels-photo-315755.jpeg?auto=compress&cs=tinysrgb&w=400",
			Category:        "Pizza",
			IsVegetarian:    true,
			IsAvailable:     true,
			PreparationTime: 15,
		},
		{
			ID:              "2",
			RestaurantID:    "1",
			Name:            "Spaghetti Carbonara",
			Description:     "Creamy pasta with pancetta, eggs, and parmesan cheese",
			Price:           decimal.RequireFromString("16.99"),
			Image:           "https://images.pexels.com/photos/1279330/pexels-photo-1279330.jpeg?auto=compress&cs=tinysrgb&w=400",
			Category:        "Pasta",
			IsAvailable:     true,
			PreparationTime: 20,
		},
		// Spice Garden
		{
			ID:              "3",
			RestaurantID:    "2",
			Name:            "Chicken Tikka Masala",
			Description:     "Tender chicken in a rich, creamy tomato-based sauce",
			Price:           decimal.RequireFromString("18.99"),
			Image:           "https://images.pexels.com/photos/2474661/pexels-photo-2474661.jpeg?auto=compress&cs=tinysrgb&w=400",
			Category:        "Main Course",
			IsAvailable:     true,
			PreparationTime: 25,
		},
		{
			ID:              "4",
			RestaurantID:    "2",
			Name:            "Vegetable Biryani",
			Description:     "Fragrant basmati rice with mixed vegetables and spices",
			Price:           decimal.RequireFromString("15.99"),
			Image:           "https://images.pexels.com/photos/1624487/pexels-photo-1624487.jpeg?auto=compress&cs=tinysrgb&w=400",
			Category:        "Rice",
			IsVegetarian:    true,
			IsAvailable:     true,
			PreparationTime: 30,
		},
		// Burger Palace
		{
			ID:              "5",
			RestaurantID:    "3",
			Name:            "Classic Cheeseburger",
			Description:     "Beef patty with cheese, lettuce, tomato, and special sauce",
			Price:           decimal.RequireFromString("12.99"),
			Image:           "https://images.pexels.com/photos/1639557/pexels-photo-1639557.jpeg?auto=compress&cs=tinysrgb&w=400",
			Category:        "Burgers",
			IsAvailable:     true,
			PreparationTime: 12,
		},
		{
			ID:              "6",
			RestaurantID:    "3",
			Name:            "Crispy Chicken Wings",
			Description:     "Spicy buffalo wings served with ranch dipping sauce",
			Price:           decimal.RequireFromString("10.99"),
			Image:           "https://images.pexels.com/photos/60616/fried-chicken-chicken-fried-crunchy-60616.jpeg?auto=compress&cs=tinysrgb&w=400",
			Category:        "Appetizers",
			IsAvailable:     true,
			PreparationTime: 15,
		},
	}
}
