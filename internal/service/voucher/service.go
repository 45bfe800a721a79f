package voucher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ferrari4891/selecttravel-api/internal/model"
	"github.com/Ferrari4891/selecttravel-api/internal/repository"
)

type Service struct {
	repo repository.VoucherRepository
}

func NewService(repo repository.VoucherRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateVoucher(ctx context.Context, voucher *model.Voucher) error {
	if err := s.validateVoucher(voucher); err != nil {
		return fmt.Errorf("invalid voucher: %w", err)
	}

	if voucher.StartsAt.IsZero() {
		voucher.StartsAt = time.Now()
	}
	voucher.IsActive = true

	if err := s.repo.Create(ctx, voucher); err != nil {
		return fmt.Errorf("failed to create voucher: %w", err)
	}
	return nil
}

func (s *Service) GetVoucher(ctx context.Context, id uuid.UUID) (*model.Voucher, error) {
	voucher, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}
	return voucher, nil
}

func (s *Service) UpdateVoucher(ctx context.Context, voucher *model.Voucher) error {
	if err := s.validateVoucher(voucher); err != nil {
		return fmt.Errorf("invalid voucher: %w", err)
	}

	if err := s.repo.Update(ctx, voucher); err != nil {
		return fmt.Errorf("failed to update voucher: %w", err)
	}
	return nil
}

func (s *Service) ListVouchers(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]*model.Voucher, error) {
	vouchers, err := s.repo.ListByBusiness(ctx, businessID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	return vouchers, nil
}

func (s *Service) DeactivateVoucher(ctx context.Context, id uuid.UUID) error {
	voucher, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get voucher: %w", err)
	}

	voucher.IsActive = false
	if err := s.repo.Update(ctx, voucher); err != nil {
		return fmt.Errorf("failed to deactivate voucher: %w", err)
	}
	return nil
}

func (s *Service) validateVoucher(voucher *model.Voucher) error {
	if voucher.BusinessID == uuid.Nil {
		return fmt.Errorf("business ID is required")
	}
	if voucher.Title == "" {
		return fmt.Errorf("title is required")
	}
	if voucher.DiscountType != model.DiscountPercentage && voucher.DiscountType != model.DiscountFixed {
		return fmt.Errorf("invalid discount type: %s", voucher.DiscountType)
	}
	if voucher.DiscountValue <= 0 {
		return fmt.Errorf("discount value must be positive")
	}
	if voucher.DiscountType == model.DiscountPercentage && voucher.DiscountValue > 100 {
		return fmt.Errorf("percentage discount cannot exceed 100")
	}
	if !voucher.ExpiresAt.IsZero() && !voucher.StartsAt.IsZero() && !voucher.ExpiresAt.After(voucher.StartsAt) {
		return fmt.Errorf("expiry must be after start")
	}
	return nil
}
