package catalog

import (
	"context"

	"esports-store/internal/backend"
	"esports-store/internal/storefront/models"
)

// ============================================================
// Catalog Service
// ============================================================

// Service читает каталог через row-level API бэкенда.
type Service struct {
	client *backend.Client
}

func New(client *backend.Client) *Service {
	return &Service{client: client}
}

// Categories возвращает все категории по имени.
func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.client.From("categories").
		Select("*").
		Order("name", true).
		Get(ctx, &categories)
	return categories, err
}

// CategoryBySlug находит категорию по slug.
func (s *Service) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := s.client.From("categories").
		Select("*").
		Eq("slug", slug).
		Single().
		Get(ctx, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ProductFilter — фильтры листинга.
type ProductFilter struct {
	CategoryID string
	Featured   bool
}

// Products возвращает товары по фильтру, отсортированные по имени.
func (s *Service) Products(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	q := s.client.From("products").Select("*")
	if filter.CategoryID != "" {
		q = q.Eq("category_id", filter.CategoryID)
	}
	if filter.Featured {
		q = q.Eq("featured", true)
	}

	var products []models.Product
	err := q.Order("name", true).Get(ctx, &products)
	return products, err
}

// ProductBySlug находит товар по slug.
func (s *Service) ProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := s.client.From("products").
		Select("*").
		Eq("slug", slug).
		Single().
		Get(ctx, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductByID находит товар по id.
func (s *Service) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.client.From("products").
		Select("*").
		Eq("id", id).
		Single().
		Get(ctx, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// SubmitOrder вставляет заказ и возвращает созданную строку.
func (s *Service) SubmitOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	var created models.Order
	err := s.client.From("orders").
		Single().
		Insert(ctx, order, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// IsAdmin проверяет роль admin в user_roles.
func (s *Service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var roles []models.UserRole
	err := s.client.From("user_roles").
		Select("role").
		Eq("user_id", userID).
		Eq("role", "admin").
		Limit(1).
		Get(ctx, &roles)
	if err != nil {
		return false, err
	}
	return len(roles) > 0, nil
}

// Profile возвращает профиль пользователя.
func (s *Service) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.client.From("profiles").
		Select("*").
		Eq("id", userID).
		Single().
		Get(ctx, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateGamertag обновляет gamertag в профиле.
func (s *Service) UpdateGamertag(ctx context.Context, userID, gamertag string) error {
	return s.client.From("profiles").
		Eq("id", userID).
		Update(ctx, map[string]string{"gamertag": gamertag})
}

// ============================================================
// Admin CRUD
// ============================================================

// CategoryInput — поля создания/обновления категории.
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (s *Service) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	var created models.Category
	err := s.client.From("categories").
		Single().
		Insert(ctx, input, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, input CategoryInput) error {
	return s.client.From("categories").
		Eq("id", id).
		Update(ctx, input)
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.client.From("categories").
		Eq("id", id).
		Delete(ctx)
}

// ProductInput — поля создания/обновления товара.
type ProductInput struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"category_id,omitempty"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock"`
	Featured    bool    `json:"featured"`
}

func (s *Service) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	var created models.Product
	err := s.client.From("products").
		Single().
		Insert(ctx, input, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, input ProductInput) error {
	return s.client.From("products").
		Eq("id", id).
		Update(ctx, input)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.client.From("products").
		Eq("id", id).
		Delete(ctx)
}
