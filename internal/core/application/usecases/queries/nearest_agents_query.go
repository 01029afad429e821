// Package queries contains the read side: direct SQL projections that never
// go through aggregates or the unit of work.
package queries

import (
	"errors"
	"strconv"
	"strings"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/services"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

// DefaultMaxNearestLimit caps the limit when the handler is not configured
// with its own maximum.
const DefaultMaxNearestLimit = 50

var (
	ErrNearestAgentsQueryIsNotConstructed = errors.New(
		"NearestAgentsQuery must be created via NewNearestAgentsQuery constructor",
	)
	// ErrInvalidCoordinates is returned for a missing or non-numeric lat/lng.
	ErrInvalidCoordinates = errs.NewValueIsInvalidErrorWithCause(
		"lat/lng", errors.New("Invalid or missing lat/lng"),
	)
)

// NearestAgentsQuery asks for the active agents closest to a point.
type NearestAgentsQuery struct {
	location kernel.Location
	limit    int

	guard guard.ConstructorGuard
}

// NewNearestAgentsQuery parses raw query parameters.
//
// An empty rawLimit means services.DefaultNearestLimit. A non-numeric or
// non-positive limit is rejected; a limit above maxLimit is capped to it.
//
// Example:
//
//	q, err := NewNearestAgentsQuery("23.79", "90.40", "", 50)
//	// q.Limit() == 5
func NewNearestAgentsQuery(rawLat, rawLng, rawLimit string, maxLimit int) (NearestAgentsQuery, error) {
	location, err := kernel.ParseLocation(rawLat, rawLng)
	if err != nil {
		return NearestAgentsQuery{}, ErrInvalidCoordinates
	}

	limit, err := parseLimit(rawLimit, maxLimit)
	if err != nil {
		return NearestAgentsQuery{}, err
	}

	return NearestAgentsQuery{
		location: location,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q NearestAgentsQuery) Validate() error {
	return q.guard.Validate(ErrNearestAgentsQueryIsNotConstructed)
}

func (q NearestAgentsQuery) Location() kernel.Location {
	return q.location
}

func (q NearestAgentsQuery) Limit() int {
	return q.limit
}

// NearestAgent is one entry of the nearest-agents answer.
type NearestAgent struct {
	ID         kernel.UUID
	Name       string
	Phone      string
	CenterName string
	CenterID   kernel.UUID
	DistanceKm float64
}

func parseLimit(raw string, maxLimit int) (int, error) {
	if maxLimit <= 0 {
		maxLimit = DefaultMaxNearestLimit
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return min(services.DefaultNearestLimit, maxLimit), nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("limit", err)
	}
	if limit <= 0 {
		return 0, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxLimit)
	}

	return min(limit, maxLimit), nil
}
