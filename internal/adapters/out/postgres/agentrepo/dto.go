// Package agentrepo persists field agents.
package agentrepo

import (
	"time"

	"roadside/internal/core/domain/model/agent"
	"roadside/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentDTO is a row of agents. The base coordinates are either both set or
// both null.
type AgentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	IdentityRef   string    `gorm:"not null;index"`
	Name          string    `gorm:"not null"`
	Phone         string
	CenterID      uuid.UUID `gorm:"type:uuid;not null;index:idx_agents_dispatch,priority:1"`
	BaseLatitude  *float64
	BaseLongitude *float64
	IsActive      bool `gorm:"not null;index:idx_agents_dispatch,priority:2"`
	IsBusy        bool `gorm:"not null;index:idx_agents_dispatch,priority:3"`
	UpdatedAt     time.Time
}

func (AgentDTO) TableName() string {
	return "agents"
}

// agentRow is an agent joined with its center's coordinates, which the
// aggregate needs to resolve its dispatch position.
type agentRow struct {
	AgentDTO
	CenterLatitude  float64
	CenterLongitude float64
}

func fromDomain(a *agent.Agent) AgentDTO {
	dto := AgentDTO{
		ID:          a.ID().Bytes(),
		IdentityRef: a.IdentityRef(),
		Name:        a.Name(),
		Phone:       a.Phone(),
		CenterID:    a.CenterID().Bytes(),
		IsActive:    a.IsActive(),
		IsBusy:      a.IsBusy(),
	}
	if base := a.BaseLocation(); base != nil {
		lat, lng := base.Lat(), base.Lng()
		dto.BaseLatitude = &lat
		dto.BaseLongitude = &lng
	}
	return dto
}

func toDomain(row agentRow) (*agent.Agent, error) {
	id, err := kernel.UUIDFromGoogle(row.ID)
	if err != nil {
		return nil, err
	}
	centerID, err := kernel.UUIDFromGoogle(row.CenterID)
	if err != nil {
		return nil, err
	}

	centerLocation, err := kernel.NewLocation(row.CenterLatitude, row.CenterLongitude)
	if err != nil {
		return nil, err
	}

	var base *kernel.Location
	if row.BaseLatitude != nil && row.BaseLongitude != nil {
		loc, locErr := kernel.NewLocation(*row.BaseLatitude, *row.BaseLongitude)
		if locErr != nil {
			return nil, locErr
		}
		base = &loc
	}

	return agent.RestoreAgent(
		id, row.IdentityRef, row.Name, row.Phone, centerID, base, centerLocation, row.IsActive, row.IsBusy,
	)
}
