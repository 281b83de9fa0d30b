package domain

// Client is a person who may enroll in trips.
// Telephone and Pesel are optional; nil is stored as SQL NULL.
type Client struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	Telephone *string
	Pesel     *string
}
