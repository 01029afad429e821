package agentrepo

import (
	"context"
	"errors"

	"roadside/internal/adapters/out/postgres/pgerr"
	"roadside/internal/core/domain/model/agent"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"

	"gorm.io/gorm"
)

const selectAgents = `
	SELECT
		a.*,
		c.latitude AS center_latitude,
		c.longitude AS center_longitude
	FROM agents a
	JOIN service_centers c ON c.id = a.center_id`

// GormAgentRepository implements AgentRepository using GORM.
type GormAgentRepository struct {
	db *gorm.DB
}

func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// Add saves a new agent.
func (r *GormAgentRepository) Add(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgerr.Wrap("add agent", r.db.WithContext(ctx).Create(&dto).Error)
}

// Update writes the mutable state of an agent: availability and reservation.
func (r *GormAgentRepository) Update(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&AgentDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"is_active": aggregate.IsActive(),
			"is_busy":   aggregate.IsBusy(),
		})
	if result.Error != nil {
		return pgerr.Wrap("update agent", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("agent", aggregate.ID().String())
	}

	return nil
}

// Get retrieves an agent by ID.
func (r *GormAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	return r.getOne(ctx, id, "")
}

// GetForUpdate retrieves an agent and locks its row.
func (r *GormAgentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	return r.getOne(ctx, id, " FOR UPDATE OF a")
}

// GetAvailable returns the active, idle agents of a center. Nothing is locked:
// checkout locks only the agent it picks, through GetIdleForUpdate.
func (r *GormAgentRepository) GetAvailable(ctx context.Context, centerID kernel.UUID) ([]*agent.Agent, error) {
	if err := centerID.Validate(); err != nil {
		return nil, err
	}

	var rows []agentRow
	err := r.db.WithContext(ctx).Raw(selectAgents+`
		WHERE a.center_id = ? AND a.is_active AND NOT a.is_busy
		ORDER BY a.id`, centerID.Bytes()).Scan(&rows).Error
	if err != nil {
		return nil, pgerr.Wrap("get available agents", err)
	}

	agents := make([]*agent.Agent, 0, len(rows))
	for _, row := range rows {
		a, mapErr := toDomain(row)
		if mapErr != nil {
			return nil, mapErr
		}
		agents = append(agents, a)
	}

	return agents, nil
}

// GetIdleForUpdate locks the agent row unless another transaction holds it.
// The flags are re-checked under the lock, so an agent reserved by a checkout
// that committed in the meantime is reported as not found.
func (r *GormAgentRepository) GetIdleForUpdate(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	return r.getOne(ctx, id, ` AND a.is_active AND NOT a.is_busy FOR UPDATE OF a SKIP LOCKED`)
}

func (r *GormAgentRepository) getOne(ctx context.Context, id kernel.UUID, suffix string) (*agent.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var rows []agentRow
	err := r.db.WithContext(ctx).Raw(selectAgents+` WHERE a.id = ?`+suffix, id.Bytes()).Scan(&rows).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pgerr.Wrap("get agent", err)
	}
	if len(rows) == 0 {
		return nil, errs.NewObjectNotFoundError("agent", id.String())
	}

	return toDomain(rows[0])
}
