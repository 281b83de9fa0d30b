package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/repo"
)

// ClientService implements client registration and trip enrollment.
type ClientService struct {
	clients     repo.ClientRepo
	enrollments repo.EnrollmentRepo
	now         func() time.Time
}

// NewClientService constructs a ClientService backed by the provided repos.
// Registration dates are stamped from time.Now; use WithClock to override.
func NewClientService(clients repo.ClientRepo, enrollments repo.EnrollmentRepo) *ClientService {
	return &ClientService{clients: clients, enrollments: enrollments, now: time.Now}
}

// WithClock replaces the time source used for RegisteredAt and returns s.
func (s *ClientService) WithClock(now func() time.Time) *ClientService {
	s.now = now
	return s
}

// Register validates and persists a new client.
// Returns domain.ErrValidation if a required field is blank.
func (s *ClientService) Register(ctx context.Context, client domain.Client) (domain.Client, error) {
	client.FirstName = strings.TrimSpace(client.FirstName)
	client.LastName = strings.TrimSpace(client.LastName)
	client.Email = strings.TrimSpace(client.Email)
	if err := validateClient(client); err != nil {
		return domain.Client{}, err
	}

	created, err := s.clients.Create(ctx, client)
	if err != nil {
		return domain.Client{}, fmt.Errorf("service.ClientService.Register: %w", err)
	}
	return created, nil
}

// Enroll signs a client up for a trip, registered today.
// Returns domain.ErrNotFound for a missing client or trip and
// domain.ErrInvalidOperation if the client is already enrolled.
func (s *ClientService) Enroll(ctx context.Context, clientID, tripID int) error {
	if err := s.enrollments.Enroll(ctx, clientID, tripID, domain.DateIntOf(s.now())); err != nil {
		return fmt.Errorf("service.ClientService.Enroll: %w", err)
	}
	return nil
}

// Remove withdraws a client from a trip.
// Returns domain.ErrNotFound for a missing client, trip or enrollment and
// domain.ErrInvalidOperation if the enrollment has been paid.
func (s *ClientService) Remove(ctx context.Context, clientID, tripID int) error {
	if err := s.enrollments.Remove(ctx, clientID, tripID); err != nil {
		return fmt.Errorf("service.ClientService.Remove: %w", err)
	}
	return nil
}

// validateClient requires the three mandatory fields. Email and pesel
// formats are not checked.
func validateClient(c domain.Client) error {
	switch {
	case c.FirstName == "":
		return fmt.Errorf("%w: firstName is required", domain.ErrValidation)
	case c.LastName == "":
		return fmt.Errorf("%w: lastName is required", domain.ErrValidation)
	case c.Email == "":
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	return nil
}
