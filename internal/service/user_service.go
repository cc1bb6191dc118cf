package service

import (
	"context"
	"errors"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/dto"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/models"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrEmptyUpdate: a profile patch with no fields set.
var ErrEmptyUpdate = errors.New("update request contains no fields")

// UserService reads and patches user profiles.
type UserService struct {
	userStore UserStore
	logger    *zap.Logger
}

func NewUserService(userStore UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		userStore: userStore,
		logger:    logger,
	}
}

func (s *UserService) GetProfile(ctx context.Context, email string) (*dto.UserResponse, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return profileResponse(user), nil
}

// UpdateProfile applies a partial patch. Unset fields are ignored; nested
// financial-details fields are patched individually.
func (s *UserService) UpdateProfile(ctx context.Context, email string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if req.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	if _, err := s.userStore.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	patch := map[string]any{}
	setIf(patch, "first_name", req.FirstName)
	setIf(patch, "last_name", req.LastName)
	setIf(patch, "address", req.Address)
	setIf(patch, "phone", req.Phone)
	setIf(patch, "additional_details", req.AdditionalDetails)
	setIf(patch, "income", req.Income)
	setIf(patch, "gets_pension", req.GetsPension)
	setIf(patch, "pension_amount", req.PensionAmount)
	setIf(patch, "invests_in_stocks", req.InvestsInStocks)
	setIf(patch, "yearly_stock_investment", req.YearlyStockInvestment)

	if err := s.userStore.UpdateByEmail(ctx, email, patch); err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", zap.String("email", email), zap.Int("fields", len(patch)))

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return profileResponse(user), nil
}

func setIf[T any](patch map[string]any, column string, value *T) {
	if value != nil {
		patch[column] = *value
	}
}

func profileResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Address:   user.Address,
		Phone:     user.Phone,
		FinancialDetails: dto.FinancialDetailsPayload{
			AdditionalDetails:     user.Financial.AdditionalDetails,
			Income:                user.Financial.Income,
			GetsPension:           user.Financial.GetsPension,
			PensionAmount:         user.Financial.PensionAmount,
			InvestsInStocks:       user.Financial.InvestsInStocks,
			YearlyStockInvestment: user.Financial.YearlyStockInvestment,
		},
	}
}
