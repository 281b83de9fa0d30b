// Package handler implements the HTTP handlers for the trip enrollment API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, client.go) but all share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pkordes/travel-agency/internal/domain"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	List(ctx context.Context) ([]domain.Trip, error)
	GetByID(ctx context.Context, id int) (domain.Trip, error)
	ListByClient(ctx context.Context, clientID int) ([]domain.ClientTrip, error)
}

// ClientServicer defines the client and enrollment operations the handlers depend on.
type ClientServicer interface {
	Register(ctx context.Context, client domain.Client) (domain.Client, error)
	Enroll(ctx context.Context, clientID, tripID int) error
	Remove(ctx context.Context, clientID, tripID int) error
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips    TripServicer
	clients  ClientServicer
	log      *slog.Logger
	validate *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(trips TripServicer, clients ClientServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names (firstName) rather than Go names (FirstName).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Server{trips: trips, clients: clients, log: log, validate: v}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil)
}

// Routes returns a chi router serving every API endpoint.
// Cross-cutting middleware (request id, logging, recovery) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handle(s.GetHealth))
	r.Get("/openapi.yaml", s.handle(s.GetOpenAPI))

	// The trips collection is served under both casings.
	for _, trips := range []string{"/api/Trips", "/api/trips"} {
		r.Get(trips, s.handle(s.ListTrips))
		r.Get(trips+"/{id}", s.handle(s.GetTrip))
	}

	r.Post("/api/clients", s.handle(s.RegisterClient))
	r.Get("/api/clients/{id}/trips", s.handle(s.ListClientTrips))
	r.Put("/api/clients/{id}/trips/{tripId}", s.handle(s.EnrollClient))
	r.Delete("/api/clients/{id}/trips/{tripId}", s.handle(s.RemoveClientFromTrip))

	return r
}
