package queries_test

import (
	"testing"

	"roadside/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQueries_NotConstructedViaConstructor(t *testing.T) {
	require.NoError(t, queries.NewListServicesQuery().Validate())
	require.NoError(t, queries.NewListCentersQuery().Validate())
	require.NoError(t, queries.NewListAgentsQuery().Validate())

	assert.ErrorIs(t, queries.ListServicesQuery{}.Validate(), queries.ErrListServicesQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListCentersQuery{}.Validate(), queries.ErrListCentersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListAgentsQuery{}.Validate(), queries.ErrListAgentsQueryIsNotConstructed)
}

func TestNewGetCartQuery(t *testing.T) {
	query, err := queries.NewGetCartQuery("  customer-1 ")
	require.NoError(t, err)
	assert.Equal(t, "customer-1", query.CustomerRef())

	_, err = queries.NewGetCartQuery(" ")
	require.ErrorIs(t, err, queries.ErrCustomerRefIsRequired)
	assert.ErrorIs(t, queries.GetCartQuery{}.Validate(), queries.ErrGetCartQueryIsNotConstructed)
}
