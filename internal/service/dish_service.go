package service

import (
	"context"
	"fmt"
	"time"

	"github.com/menu-interativo/back-end/internal/model"
	"github.com/menu-interativo/back-end/internal/repository"
	"github.com/menu-interativo/back-end/internal/slug"
	"github.com/menu-interativo/back-end/internal/storage"
	"github.com/menu-interativo/back-end/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// dishService implements DishService.
type dishService struct {
	dishRepo repository.DishRepository
	images   storage.ImageStore
	logger   zerolog.Logger
}

// NewDishService creates a new dish service.
func NewDishService(dishRepo repository.DishRepository, images storage.ImageStore, logger zerolog.Logger) DishService {
	return &dishService{
		dishRepo: dishRepo,
		images:   images,
		logger:   logger.With().Str("service", "dish").Logger(),
	}
}

func (s *dishService) Create(ctx context.Context, req *model.CreateDishRequest) (uuid.UUID, error) {
	if err := validation.Struct(req); err != nil {
		return uuid.Nil, err
	}

	dishSlug := slug.Make(req.Name)
	if dishSlug == "" {
		return uuid.Nil, model.NewValidationError("name", "must contain letters or digits")
	}

	existing, err := s.dishRepo.GetBySlug(ctx, dishSlug)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create dish: %w", err)
	}
	if existing != nil {
		return uuid.Nil, model.ErrDishExists
	}

	dish := &model.Dish{
		ID:          uuid.New(),
		Slug:        dishSlug,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		CreatedAt:   time.Now(),
	}
	// The unique index still catches a concurrent insert of the same slug.
	if err := s.dishRepo.Create(ctx, dish); err != nil {
		return uuid.Nil, err
	}

	s.logger.Info().Str("dish_id", dish.ID.String()).Str("slug", dishSlug).Msg("dish created")
	return dish.ID, nil
}

func (s *dishService) List(ctx context.Context) ([]model.Dish, error) {
	dishes, err := s.dishRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	return dishes, nil
}

func (s *dishService) ListAvailable(ctx context.Context, category string) ([]model.Dish, error) {
	c := model.DishCategory(category)
	if !c.Valid() {
		return nil, model.NewValidationError("category", "must be one of [STARTER MAIN_COURSE SIDE_DISH DESSERT DRINK]")
	}

	dishes, err := s.dishRepo.ListAvailableByCategory(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to list available dishes: %w", err)
	}
	return dishes, nil
}

func (s *dishService) CreateCustomization(ctx context.Context, req *model.CreateCustomizationRequest) (uuid.UUID, error) {
	if err := validation.Struct(req); err != nil {
		return uuid.Nil, err
	}

	c := &model.Customization{
		ID:        uuid.New(),
		Name:      req.Name,
		Price:     req.Price,
		CreatedAt: time.Now(),
	}
	if err := s.dishRepo.CreateCustomization(ctx, c); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create customization: %w", err)
	}
	return c.ID, nil
}

func (s *dishService) AttachCustomizations(ctx context.Context, dishSlug string, req *model.AttachCustomizationsRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	dish, err := s.dishRepo.GetBySlug(ctx, dishSlug)
	if err != nil {
		return fmt.Errorf("failed to attach customizations: %w", err)
	}
	if dish == nil {
		return model.ErrDishNotFound
	}

	seen := make(map[uuid.UUID]struct{}, len(req.CustomizationIDs))
	ids := make([]uuid.UUID, 0, len(req.CustomizationIDs))
	for _, raw := range req.CustomizationIDs {
		id := uuid.MustParse(raw)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	n, err := s.dishRepo.AttachCustomizations(ctx, dish.ID, ids)
	if err != nil {
		return fmt.Errorf("failed to attach customizations: %w", err)
	}
	if n != int64(len(ids)) {
		s.logger.Warn().
			Str("dish_id", dish.ID.String()).
			Int("requested", len(ids)).
			Int64("attached", n).
			Msg("some customizations were not found")
	}
	return nil
}

func (s *dishService) UploadImage(ctx context.Context, dishSlug string, upload Upload) (string, error) {
	if err := storage.CheckImage(upload.ContentType, upload.Size); err != nil {
		return "", err
	}

	dish, err := s.dishRepo.GetBySlug(ctx, dishSlug)
	if err != nil {
		return "", fmt.Errorf("failed to upload dish image: %w", err)
	}
	if dish == nil {
		return "", model.ErrDishNotFound
	}

	ext, _ := storage.Extension(upload.ContentType)
	url, err := s.images.Save(ctx, "dishes/"+dish.Slug+"-"+uuid.NewString()+ext, upload.Body, upload.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to store dish image: %w", err)
	}

	if _, err := s.dishRepo.UpdateImage(ctx, dish.Slug, url); err != nil {
		return "", fmt.Errorf("failed to update dish image: %w", err)
	}

	s.logger.Info().Str("dish_id", dish.ID.String()).Str("url", url).Msg("dish image updated")
	return url, nil
}
