package usecase

import (
	"context"

	"ewastex/internal/domain/entity"
	"ewastex/internal/domain/repository"
	"ewastex/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

type RegisterInput struct {
	Name          string
	Email         string
	WalletAddress string
}

func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	existing, err := uc.userRepo.GetByWalletAddress(ctx, input.WalletAddress)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil {
		return nil, errors.BadRequest("Wallet address is already registered", nil)
	}

	user := &entity.User{
		Name:          input.Name,
		Email:         input.Email,
		WalletAddress: input.WalletAddress,
		Role:          "user",
		RecycledItems: []string{},
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) GetByWalletAddress(ctx context.Context, walletAddress string) (*entity.User, error) {
	return uc.userRepo.GetByWalletAddress(ctx, walletAddress)
}
