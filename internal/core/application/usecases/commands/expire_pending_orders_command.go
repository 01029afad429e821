package commands

import (
	"errors"
	"time"

	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

const DefaultExpiryBatchSize = 100

var ErrExpirePendingOrdersCommandIsNotConstructed = errors.New(
	"ExpirePendingOrdersCommand must be created via NewExpirePendingOrdersCommand constructor",
)

// ExpirePendingOrdersCommand cancels online orders whose payment never arrived.
type ExpirePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	ttl       time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

// NewExpirePendingOrdersCommand creates an expiry sweep for orders pending
// longer than ttl. A batchSize of zero means DefaultExpiryBatchSize.
func NewExpirePendingOrdersCommand(ttl time.Duration, batchSize int) (ExpirePendingOrdersCommand, error) {
	if ttl <= 0 {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsOutOfRangeError("ttl", ttl, "1ns", "unbounded")
	}
	if batchSize < 0 {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 0, "unbounded")
	}
	if batchSize == 0 {
		batchSize = DefaultExpiryBatchSize
	}

	return ExpirePendingOrdersCommand{
		ttl:       ttl,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ExpirePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingOrdersCommandIsNotConstructed)
}

func (c ExpirePendingOrdersCommand) TTL() time.Duration {
	return c.ttl
}

func (c ExpirePendingOrdersCommand) BatchSize() int {
	return c.batchSize
}
