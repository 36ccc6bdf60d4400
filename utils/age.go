// utils/age.go
package utils

import "time"

// Age returns the full years between birthDate and now.
func Age(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// BirthDateBounds converts an inclusive [minAge, maxAge] range into birth
// date bounds as of now. minAge maps to an upper bound on the birth date
// (latest), maxAge to a lower bound (earliest). A user whose minAge-th
// birthday is tomorrow falls outside the range today.
func BirthDateBounds(minAge, maxAge *int, now time.Time) (latest, earliest *time.Time) {
	if minAge != nil {
		t := time.Date(now.Year()-*minAge, now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		latest = &t
	}
	if maxAge != nil {
		t := time.Date(now.Year()-*maxAge-1, now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
		earliest = &t
	}
	return latest, earliest
}
