package business

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/Ferrari4891/selecttravel-api/internal/model"
	"github.com/Ferrari4891/selecttravel-api/internal/repository"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// Service manages business profiles. Reads go through a short-lived cache for
// API traffic; the dispatcher never touches this service, eligibility is
// re-evaluated from the store on every cycle.
type Service struct {
	repo  repository.BusinessRepository
	cache *cache.Cache
}

func NewService(repo repository.BusinessRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(cacheTTL, cacheCleanup),
	}
}

func (s *Service) CreateBusiness(ctx context.Context, business *model.Business) error {
	if err := s.validateBusiness(business); err != nil {
		return fmt.Errorf("invalid business: %w", err)
	}

	if business.Tier == "" {
		business.Tier = model.TierTrial
	}
	business.Status = model.BusinessStatusPending

	if err := s.repo.Create(ctx, business); err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

func (s *Service) GetBusiness(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	if cached, found := s.cache.Get(id.String()); found {
		return cached.(*model.Business), nil
	}

	business, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	s.cache.Set(id.String(), business, cache.DefaultExpiration)
	return business, nil
}

func (s *Service) UpdateBusiness(ctx context.Context, business *model.Business) error {
	if err := s.validateBusiness(business); err != nil {
		return fmt.Errorf("invalid business: %w", err)
	}

	if err := s.repo.Update(ctx, business); err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}

	s.cache.Delete(business.ID.String())
	return nil
}

func (s *Service) ListBusinesses(ctx context.Context, filters map[string]interface{}) ([]*model.Business, error) {
	businesses, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, nil
}

func (s *Service) validateBusiness(business *model.Business) error {
	if business.Name == "" {
		return fmt.Errorf("name is required")
	}
	if business.OwnerID == uuid.Nil {
		return fmt.Errorf("owner ID is required")
	}
	if business.Tier != "" {
		switch business.Tier {
		case model.TierTrial, model.TierBasic, model.TierPremium:
		default:
			return fmt.Errorf("invalid subscription tier: %s", business.Tier)
		}
	}
	return nil
}
