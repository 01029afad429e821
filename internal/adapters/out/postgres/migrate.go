package postgres

import (
	"roadside/internal/adapters/out/postgres/agentrepo"
	"roadside/internal/adapters/out/postgres/cartrepo"
	"roadside/internal/adapters/out/postgres/catalogrepo"
	"roadside/internal/adapters/out/postgres/centerrepo"
	"roadside/internal/adapters/out/postgres/orderrepo"
	"roadside/internal/adapters/out/postgres/outboxrepo"

	"gorm.io/gorm"
)

// Models lists every persisted table in dependency order.
func Models() []any {
	return []any{
		&centerrepo.CenterDTO{},
		&agentrepo.AgentDTO{},
		&catalogrepo.ServiceDTO{},
		&cartrepo.CartDTO{},
		&cartrepo.CartItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&outboxrepo.MessageDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// TruncateAll empties every table. Used by integration tests and the seed tool.
func TruncateAll(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE outbox, order_items, orders, cart_items, carts, services, agents, service_centers").Error
}
