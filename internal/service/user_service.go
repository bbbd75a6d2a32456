package service

import (
	"context"
	"fmt"
	"time"

	"github.com/menu-interativo/back-end/internal/auth"
	"github.com/menu-interativo/back-end/internal/model"
	"github.com/menu-interativo/back-end/internal/repository"
	"github.com/menu-interativo/back-end/internal/storage"
	"github.com/menu-interativo/back-end/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo   repository.UserRepository
	tableRepo  repository.TableRepository
	tokens     *auth.TokenManager
	images     storage.ImageStore
	bcryptCost int
	logger     zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo repository.UserRepository,
	tableRepo repository.TableRepository,
	tokens *auth.TokenManager,
	images storage.ImageStore,
	bcryptCost int,
	logger zerolog.Logger,
) UserService {
	return &userService{
		userRepo:   userRepo,
		tableRepo:  tableRepo,
		tokens:     tokens,
		images:     images,
		bcryptCost: bcryptCost,
		logger:     logger.With().Str("service", "user").Logger(),
	}
}

func (s *userService) Authenticate(ctx context.Context, req *model.AuthenticateRequest) (*model.AuthenticateResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.Email == "" && req.RegistrationNumber == "" {
		return nil, model.ErrMissingIdentifier
	}

	var (
		user *model.User
		err  error
	)
	if req.Email != "" {
		user, err = s.userRepo.GetByEmail(ctx, req.Email)
	} else {
		user, err = s.userRepo.GetByRegistrationNumber(ctx, req.RegistrationNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	if user == nil {
		s.logger.Debug().Msg("authentication failed: unknown identifier")
		return nil, model.ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	if !ok {
		s.logger.Debug().Str("user_id", user.ID.String()).Msg("authentication failed: wrong password")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user authenticated")
	return &model.AuthenticateResponse{Token: token}, nil
}

func (s *userService) Profile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, req *model.CreateUserRequest) (uuid.UUID, error) {
	if err := validation.Struct(req); err != nil {
		return uuid.Nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleWaiter
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}

	user := &model.User{
		ID:                 uuid.New(),
		Name:               req.Name,
		Email:              req.Email,
		RegistrationNumber: req.RegistrationNumber,
		PasswordHash:       hash,
		Role:               role,
		CreatedAt:          time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return uuid.Nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("role", string(role)).Msg("user created")
	return user.ID, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	userID, err := parseID("userId", id)
	if err != nil {
		return nil, err
	}
	return s.Profile(ctx, userID)
}

func (s *userService) Update(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.User, error) {
	userID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	ok, err := s.userRepo.Update(ctx, &model.User{ID: userID, Name: req.Name, AvatarURL: req.AvatarURL, Role: req.Role})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if !ok {
		return nil, model.ErrUserNotFound
	}

	s.logger.Info().Str("user_id", userID.String()).Msg("user updated")
	return s.Profile(ctx, userID)
}

func (s *userService) AssignTables(ctx context.Context, userID string, req *model.AssignTablesRequest) error {
	id, err := parseID("userId", userID)
	if err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to assign tables: %w", err)
	}
	if user == nil {
		return model.ErrUserNotFound
	}
	if user.Role != model.RoleWaiter {
		return model.ErrNotAWaiter
	}

	seen := make(map[uuid.UUID]struct{}, len(req.TableIDs))
	tableIDs := make([]uuid.UUID, 0, len(req.TableIDs))
	for _, raw := range req.TableIDs {
		tid := uuid.MustParse(raw)
		if _, dup := seen[tid]; dup {
			continue
		}
		seen[tid] = struct{}{}
		tableIDs = append(tableIDs, tid)
	}

	n, err := s.tableRepo.CountExisting(ctx, tableIDs)
	if err != nil {
		return fmt.Errorf("failed to assign tables: %w", err)
	}
	if n != len(tableIDs) {
		return model.ErrTablesMissing
	}

	if err := s.tableRepo.AssignWaiter(ctx, id, tableIDs); err != nil {
		return fmt.Errorf("failed to assign tables: %w", err)
	}

	s.logger.Info().Str("user_id", id.String()).Int("tables", len(tableIDs)).Msg("tables assigned")
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID string, upload Upload) (string, error) {
	id, err := parseID("userId", userID)
	if err != nil {
		return "", err
	}
	if err := storage.CheckImage(upload.ContentType, upload.Size); err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	if user == nil {
		return "", model.ErrUserNotFound
	}

	ext, _ := storage.Extension(upload.ContentType)
	url, err := s.images.Save(ctx, "avatars/"+id.String()+"-"+uuid.NewString()+ext, upload.Body, upload.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}

	if _, err := s.userRepo.UpdateAvatar(ctx, id, url); err != nil {
		return "", fmt.Errorf("failed to update avatar: %w", err)
	}
	return url, nil
}
