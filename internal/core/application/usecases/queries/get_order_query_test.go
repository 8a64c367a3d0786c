package queries_test

import (
	"testing"

	"willowcommerce/internal/core/application/usecases/queries"
	"willowcommerce/internal/core/domain/model/kernel"
	"willowcommerce/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("should create query with valid parameters", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery("u1", 42)

		require.NoError(t, err)
		assert.Equal(t, "u1", query.TenantID())
		assert.Equal(t, int64(42), query.OrderID())
		require.NoError(t, query.Validate())
	})

	t.Run("should reject empty tenant ID", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery("", 42)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject non-positive order ID", func(t *testing.T) {
		for _, id := range []int64{0, -1} {
			_, err := queries.NewGetOrderQuery("u1", id)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("should reject query not created via constructor", func(t *testing.T) {
		query := queries.GetOrderQuery{}

		err := query.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestNewGetLabelQuery(t *testing.T) {
	t.Run("should create query with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()

		query, err := queries.NewGetLabelQuery("u1", id)

		require.NoError(t, err)
		assert.Equal(t, "u1", query.TenantID())
		assert.True(t, query.LabelID().IsEqual(id))
		require.NoError(t, query.Validate())
	})

	t.Run("should reject empty tenant ID", func(t *testing.T) {
		_, err := queries.NewGetLabelQuery("", kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject zero-value label ID", func(t *testing.T) {
		_, err := queries.NewGetLabelQuery("u1", kernel.UUID{})

		require.Error(t, err)
	})

	t.Run("should reject query not created via constructor", func(t *testing.T) {
		query := queries.GetLabelQuery{}

		err := query.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrGetLabelQueryIsNotConstructed)
	})
}
