package servers_test

import (
	"context"
	"testing"

	"roadside/internal/generated/servers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger_IsValid(t *testing.T) {
	swagger, err := servers.GetSwagger()
	require.NoError(t, err)

	require.NoError(t, swagger.Validate(context.Background()))
	assert.Equal(t, "/api/v1", swagger.Servers[0].URL)
}

func TestGetSwagger_DescribesEveryRoute(t *testing.T) {
	swagger, err := servers.GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{
		"/checkout",
		"/agents",
		"/agents/nearest",
		"/services",
		"/centers",
		"/cart",
		"/cart/items",
		"/cart/items/{itemId}",
		"/payments/success",
		"/orders",
		"/orders/{orderId}",
		"/orders/{orderId}/cancel",
		"/orders/{orderId}/complete",
	} {
		assert.NotNil(t, swagger.Paths.Find(path), path)
	}
}
