package handler

import (
	"net/http"

	"github.com/pkordes/travel-agency/internal/domain"
)

// CountryResponse is a country as nested inside a trip.
type CountryResponse struct {
	Name string `json:"name"`
}

// TripResponse is the JSON shape of a trip.
type TripResponse struct {
	ID        int               `json:"id"`
	Name      string            `json:"name"`
	Countries []CountryResponse `json:"countries"`
}

// ListTrips handles GET /api/Trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) error {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		return err
	}

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	return writeJSON(w, http.StatusOK, data)
}

// GetTrip handles GET /api/Trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) error {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return nil
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		if writeDomainError(w, err) {
			return nil
		}
		return err
	}
	return writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// --- mapping helpers --------------------------------------------------------

// tripToResponse converts a domain.Trip into its JSON shape.
// Countries is always an array, never null.
func tripToResponse(t domain.Trip) TripResponse {
	resp := TripResponse{
		ID:        t.ID,
		Name:      t.Name,
		Countries: make([]CountryResponse, len(t.Countries)),
	}
	for i, c := range t.Countries {
		resp.Countries[i] = CountryResponse{Name: c.Name}
	}
	return resp
}
