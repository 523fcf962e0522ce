package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	"github.com/salonkita/salonkita-api/internal/domain/repository"
	"github.com/salonkita/salonkita-api/pkg/apperror"
	"github.com/salonkita/salonkita-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	tenantRepo repository.TenantRepository,
	jwtManager *utils.JWTManager,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		jwtManager: jwtManager,
	}
}

// RegisterInput represents the registration input. Registration creates
// the business (tenant) together with its owner account.
type RegisterInput struct {
	BusinessName string
	Name         string
	Email        string
	Password     string
}

// RegisterOutput represents the registration output
type RegisterOutput struct {
	User         *entity.User
	Tenant       *entity.Tenant
	AccessToken  string
	RefreshToken string
}

// Register creates a new tenant with default settings and its owner user
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	exists, err := s.userRepo.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflictError("Email is already registered")
	}

	slug := utils.Slugify(input.BusinessName)
	if slug == "" {
		return nil, apperror.NewInvalidInputError("business_name", "must contain letters or digits")
	}
	taken, err := s.tenantRepo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.NewConflictError("Business name is already taken")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	// The owner's ID is fixed up front so the tenant can reference it
	// before the user row exists.
	ownerID := uuid.New()
	tenant := &entity.Tenant{
		Name:     input.BusinessName,
		Slug:     slug,
		OwnerID:  ownerID,
		Settings: entity.DefaultTenantSettings(),
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:       ownerID,
		TenantID: tenant.ID,
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     entity.RoleOwner,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	return &RegisterOutput{
		User:         user,
		Tenant:       tenant,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}

	accessToken, newRefreshToken, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// GetCurrentUser retrieves the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *entity.User) (string, string, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.TenantID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
