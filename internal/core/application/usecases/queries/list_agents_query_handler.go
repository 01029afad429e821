package queries

import (
	"context"

	"roadside/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListAgentsQueryHandler struct {
	db *gorm.DB
}

func NewListAgentsQueryHandler(db *gorm.DB) ListAgentsQueryHandler {
	return ListAgentsQueryHandler{db: db}
}

// Handle returns active agents sorted by center, then by name. Agents of an
// inactive center are listed too; only the agent's own flag counts here.
func (h ListAgentsQueryHandler) Handle(ctx context.Context, query ListAgentsQuery) ([]AgentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.name,
			COALESCE(a.phone, ''),
			c.id,
			c.name,
			a.is_busy
		FROM agents a
		JOIN service_centers c ON c.id = a.center_id
		WHERE a.is_active
		ORDER BY c.name, a.name, a.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agents := make([]AgentView, 0)
	for rows.Next() {
		var (
			view              AgentView
			agentID, centerID uuid.UUID
		)
		if err = rows.Scan(&agentID, &view.Name, &view.Phone, &centerID, &view.CenterName, &view.IsBusy); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromGoogle(agentID); err != nil {
			return nil, err
		}
		if view.CenterID, err = kernel.UUIDFromGoogle(centerID); err != nil {
			return nil, err
		}
		agents = append(agents, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return agents, nil
}
