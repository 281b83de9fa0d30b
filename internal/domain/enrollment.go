package domain

import "time"

// DateInt is a calendar date stored as an 8-digit YYYYMMDD integer.
// Client_Trip keeps RegisteredAt and PaymentDate in this form.
type DateInt int

// DateIntOf converts t to its YYYYMMDD form in t's own location.
func DateIntOf(t time.Time) DateInt {
	y, m, d := t.Date()
	return DateInt(y*10000 + int(m)*100 + d)
}

// Time returns the date as midnight UTC.
func (d DateInt) Time() time.Time {
	n := int(d)
	return time.Date(n/10000, time.Month(n/100%100), n%100, 0, 0, 0, 0, time.UTC)
}

// Enrollment links a client to a trip.
// PaymentDate is nil until the client pays; paid enrollments cannot be removed.
type Enrollment struct {
	ClientID     int
	TripID       int
	RegisteredAt DateInt
	PaymentDate  *DateInt
}

// Paid reports whether a payment date has been recorded.
func (e Enrollment) Paid() bool {
	return e.PaymentDate != nil
}
