package queries

import (
	"context"
	"math"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NearestAgentsQueryHandler ranks every active agent of every active center
// by distance from the query point. Busy agents are listed too; the answer
// shows who is around, not who would be dispatched.
type NearestAgentsQueryHandler struct {
	db *gorm.DB
}

func NewNearestAgentsQueryHandler(db *gorm.DB) NearestAgentsQueryHandler {
	return NearestAgentsQueryHandler{db: db}
}

// Handle returns at most query.Limit() agents, nearest first, with distances
// rounded to two decimals. No agents is an empty, non-nil slice.
func (h NearestAgentsQueryHandler) Handle(ctx context.Context, query NearestAgentsQuery) ([]NearestAgent, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.name,
			a.phone,
			c.id,
			c.name,
			COALESCE(a.base_latitude, c.latitude),
			COALESCE(a.base_longitude, c.longitude)
		FROM agents a
		JOIN service_centers c ON c.id = a.center_id
		WHERE a.is_active AND c.is_active
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := make([]agentCandidate, 0)
	for rows.Next() {
		var (
			agentID, centerID uuid.UUID
			lat, lng          float64
			candidate         agentCandidate
		)
		if err = rows.Scan(
			&agentID,
			&candidate.view.Name,
			&candidate.view.Phone,
			&centerID,
			&candidate.view.CenterName,
			&lat,
			&lng,
		); err != nil {
			return nil, err
		}

		if candidate.view.ID, err = kernel.UUIDFromGoogle(agentID); err != nil {
			return nil, err
		}
		if candidate.view.CenterID, err = kernel.UUIDFromGoogle(centerID); err != nil {
			return nil, err
		}
		if candidate.location, err = kernel.NewLocation(lat, lng); err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	ranked := services.RankByDistance(query.Location(), candidates, query.Limit())
	result := make([]NearestAgent, 0, len(ranked))
	for _, r := range ranked {
		view := r.Candidate.view
		view.DistanceKm = math.Round(r.DistanceKm*100) / 100
		result = append(result, view)
	}

	return result, nil
}

// agentCandidate adapts a row to services.Positioned.
type agentCandidate struct {
	view     NearestAgent
	location kernel.Location
}

func (c agentCandidate) ID() kernel.UUID {
	return c.view.ID
}

func (c agentCandidate) Location() kernel.Location {
	return c.location
}
