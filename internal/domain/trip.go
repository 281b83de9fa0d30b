// Package domain contains the core data types for the trip enrollment API.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

// Country is a destination a trip visits. Reference data, read-only.
type Country struct {
	ID   int
	Name string
}

// Trip is a bookable journey. Countries is never nil once loaded by the repo;
// a trip with no associated countries carries an empty slice.
type Trip struct {
	ID        int
	Name      string
	Countries []Country
}

// ClientTrip is one entry of a client's trip list: the trip name and the
// names of the countries it visits.
type ClientTrip struct {
	TripName  string
	Countries []string
}
