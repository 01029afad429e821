package kernel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

const (
	// LatitudeMin is the southernmost valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the northernmost valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the westernmost valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the easternmost valid longitude in degrees.
	LongitudeMax = 180.0
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation or ParseLocation")

// Location is a point on the Earth's surface expressed in decimal degrees.
// It is an immutable value object; the zero value is invalid.
//
// Example:
//
//	dhaka, err := kernel.NewLocation(23.7925, 90.4078)
//	if err != nil {
//	    // out of range
//	}
//	fmt.Println(dhaka) // Location(23.792500,90.407800)
type Location struct { //nolint:recvcheck // pointer receivers only on private setters
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation creates a Location from latitude and longitude in degrees.
//
// Parameters:
//   - lat: latitude within [LatitudeMin..LatitudeMax]
//   - lng: longitude within [LongitudeMin..LongitudeMax]
//
// Returns:
//   - Location: a valid location
//   - error: joined out-of-range errors for every offending coordinate; NaN and
//     infinities are always out of range
func NewLocation(lat, lng float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// ParseLocation creates a Location from raw textual coordinates such as query
// string or form values. Surrounding whitespace is ignored.
//
// Returns:
//   - Location: a valid location
//   - error: ValueIsInvalidError when either value is missing or not a number,
//     otherwise the range errors of NewLocation
//
// Example:
//
//	loc, err := kernel.ParseLocation("23.7925", "90.4078")
func ParseLocation(rawLat, rawLng string) (Location, error) {
	lat, latErr := parseCoordinate("lat", rawLat)
	lng, lngErr := parseCoordinate("lng", rawLng)
	if err := errors.Join(latErr, lngErr); err != nil {
		return Location{}, err
	}
	return NewLocation(lat, lng)
}

// MustNewLocation is NewLocation for compile-time constants such as seed data
// and tests. It panics on invalid input.
func MustNewLocation(lat, lng float64) Location {
	loc, err := NewLocation(lat, lng)
	if err != nil {
		panic(err)
	}
	return loc
}

// Validate reports whether the Location was built by a constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// Lng returns the longitude in degrees.
func (l Location) Lng() float64 {
	return l.lng
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.lat, l.lng)
}

// IsEqual compares two constructed locations coordinate by coordinate.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}
	return l.lat == other.lat && l.lng == other.lng, nil
}

// DistanceTo returns the great-circle distance in kilometers to other.
// It is a convenience wrapper over Distance that validates both operands.
func (l Location) DistanceTo(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}
	return Distance(l, other), nil
}

func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}
	l.lat = lat
	return nil
}

func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}
	l.lng = lng
	return nil
}

func parseCoordinate(name, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errs.NewValueIsRequiredError(name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}
