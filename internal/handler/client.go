package handler

import (
	"fmt"
	"net/http"

	"github.com/pkordes/travel-agency/internal/domain"
)

// CreateClientRequest is the body of POST /api/clients.
// Telephone and Pesel may be omitted or null.
type CreateClientRequest struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Email     string  `json:"email" validate:"required"`
	Telephone *string `json:"telephone"`
	Pesel     *string `json:"pesel"`
}

// ClientTripResponse is one entry of GET /api/clients/{id}/trips.
type ClientTripResponse struct {
	TripName  string   `json:"tripName"`
	Countries []string `json:"countries"`
}

// ListClientTrips handles GET /api/clients/{id}/trips.
// A client with no listed trips is answered with 404.
func (s *Server) ListClientTrips(w http.ResponseWriter, r *http.Request) error {
	clientID, ok := pathInt(w, r, "id")
	if !ok {
		return nil
	}

	trips, err := s.trips.ListByClient(r.Context(), clientID)
	if err != nil {
		return err
	}
	if len(trips) == 0 {
		writeText(w, http.StatusNotFound, fmt.Sprintf("no trips found for client %d", clientID))
		return nil
	}

	data := make([]ClientTripResponse, len(trips))
	for i, t := range trips {
		countries := t.Countries
		if countries == nil {
			countries = []string{}
		}
		data[i] = ClientTripResponse{TripName: t.TripName, Countries: countries}
	}
	return writeJSON(w, http.StatusOK, data)
}

// RegisterClient handles POST /api/clients.
// Success is 201 with an empty body and no Location header.
func (s *Server) RegisterClient(w http.ResponseWriter, r *http.Request) error {
	var body CreateClientRequest
	if !s.decodeBody(w, r, &body) {
		return nil
	}

	_, err := s.clients.Register(r.Context(), domain.Client{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Telephone: body.Telephone,
		Pesel:     body.Pesel,
	})
	if err != nil {
		if writeDomainError(w, err) {
			return nil
		}
		return err
	}

	w.WriteHeader(http.StatusCreated)
	return nil
}

// EnrollClient handles PUT /api/clients/{id}/trips/{tripId}.
func (s *Server) EnrollClient(w http.ResponseWriter, r *http.Request) error {
	clientID, tripID, ok := enrollmentPath(w, r)
	if !ok {
		return nil
	}

	if err := s.clients.Enroll(r.Context(), clientID, tripID); err != nil {
		if writeDomainError(w, err) {
			return nil
		}
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// RemoveClientFromTrip handles DELETE /api/clients/{id}/trips/{tripId}.
func (s *Server) RemoveClientFromTrip(w http.ResponseWriter, r *http.Request) error {
	clientID, tripID, ok := enrollmentPath(w, r)
	if !ok {
		return nil
	}

	if err := s.clients.Remove(r.Context(), clientID, tripID); err != nil {
		if writeDomainError(w, err) {
			return nil
		}
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// enrollmentPath binds the {id} and {tripId} path parameters.
func enrollmentPath(w http.ResponseWriter, r *http.Request) (clientID, tripID int, ok bool) {
	if clientID, ok = pathInt(w, r, "id"); !ok {
		return 0, 0, false
	}
	if tripID, ok = pathInt(w, r, "tripId"); !ok {
		return 0, 0, false
	}
	return clientID, tripID, true
}
