package service

import (
	"context"
	"errors"
	"time"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/dto"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/models"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/pkg/auth"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("email already registered")
)

type AuthService struct {
	userStore  UserStore
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(userStore UserStore, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		userStore:  userStore,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// EmailAvailable reports whether the email is unused.
func (s *AuthService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	_, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

func (s *AuthService) Register(ctx context.Context, req *dto.SignUpRequest) error {
	available, err := s.EmailAvailable(ctx, req.Email)
	if err != nil {
		return err
	}
	if !available {
		return ErrUserExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Phone:     req.Phone,
		Financial: models.FinancialDetails{
			AdditionalDetails:     req.FinancialDetails.AdditionalDetails,
			Income:                req.FinancialDetails.Income,
			GetsPension:           req.FinancialDetails.GetsPension,
			PensionAmount:         req.FinancialDetails.PensionAmount,
			InvestsInStocks:       req.FinancialDetails.InvestsInStocks,
			YearlyStockInvestment: req.FinancialDetails.YearlyStockInvestment,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User registered", zap.String("email", user.Email))
	return nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.SignInRequest) (*dto.TokenResponse, error) {
	user, err := s.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		// Only an absent user is a credentials problem; a store failure
		// must surface as one.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateToken(user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

// ResolveUser looks up the authenticated subject. A valid token whose subject
// no longer exists is reported as ErrUserNotFound, distinct from an
// authentication failure.
func (s *AuthService) ResolveUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
