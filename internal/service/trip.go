// Package service contains the business logic for the trip enrollment API.
// Services enforce business rules and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/repo"
)

// TripService implements the read operations on trips.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// List returns all trips ordered by id with their countries.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) GetByID(ctx context.Context, id int) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// ListByClient returns the trips a client is enrolled in, ordered by name.
// An empty result is not an error here; the HTTP layer decides what it means.
func (s *TripService) ListByClient(ctx context.Context, clientID int) ([]domain.ClientTrip, error) {
	trips, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByClient: %w", err)
	}
	if trips == nil {
		return []domain.ClientTrip{}, nil
	}
	return trips, nil
}
