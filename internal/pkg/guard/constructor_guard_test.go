package guard_test

import (
	"errors"
	"sync"
	"testing"

	"roadside/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("agent must be created via NewAgent")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, errNotConstructed, g.Validate(errNotConstructed))
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type servicePrice struct {
		amount int
		guard  guard.ConstructorGuard
	}
	errPriceNotConstructed := errors.New("price must be created via newServicePrice")
	newServicePrice := func(amount int) servicePrice {
		return servicePrice{amount: amount, guard: guard.NewConstructorGuard()}
	}

	built := newServicePrice(199)
	copied := built

	require.NoError(t, built.guard.Validate(errPriceNotConstructed))
	require.NoError(t, copied.guard.Validate(errPriceNotConstructed))

	var zero servicePrice
	assert.Equal(t, errPriceNotConstructed, zero.guard.Validate(errPriceNotConstructed))
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	errNotConstructed := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.NoError(t, g.Validate(errNotConstructed))
			}
		}()
	}
	wg.Wait()
}
