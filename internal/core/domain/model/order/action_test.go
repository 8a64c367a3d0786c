package order_test

import (
	"fmt"
	"testing"

	"willowcommerce/internal/core/domain/model/order"
	"willowcommerce/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_Validate(t *testing.T) {
	t.Run("should validate supported actions", func(t *testing.T) {
		validActions := []order.Action{
			order.ActionCancel,
			order.ActionRefund,
			order.ActionReturn,
			order.ActionReplace,
		}

		for _, action := range validActions {
			t.Run(fmt.Sprintf("should validate %s action", action.String()), func(t *testing.T) {
				require.NoError(t, action.Validate())
			})
		}
	})

	t.Run("should reject unsupported actions", func(t *testing.T) {
		invalidActions := []order.Action{
			order.Action(""),
			order.Action("Cancel"),
			order.Action("exchange"),
			order.Action("REFUND"),
		}

		for _, action := range invalidActions {
			t.Run(fmt.Sprintf("should reject action %q", action.String()), func(t *testing.T) {
				err := action.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), "is not a supported order action")
			})
		}
	})
}

func TestParseAction(t *testing.T) {
	t.Run("should parse valid action names", func(t *testing.T) {
		testCases := []struct {
			raw      string
			expected order.Action
		}{
			{"cancel", order.ActionCancel},
			{"refund", order.ActionRefund},
			{"return", order.ActionReturn},
			{"replace", order.ActionReplace},
		}

		for _, tc := range testCases {
			t.Run(fmt.Sprintf("should parse %s", tc.raw), func(t *testing.T) {
				action, err := order.ParseAction(tc.raw)

				require.NoError(t, err)
				assert.Equal(t, tc.expected, action)
			})
		}
	})

	t.Run("should reject invalid action names", func(t *testing.T) {
		action, err := order.ParseAction("destroy")

		require.Error(t, err)
		assert.Equal(t, order.Action(""), action)
	})
}

func TestAction_RequiresLabel(t *testing.T) {
	t.Run("should require a label for return and replace", func(t *testing.T) {
		assert.True(t, order.ActionReturn.RequiresLabel())
		assert.True(t, order.ActionReplace.RequiresLabel())
	})

	t.Run("should not require a label for cancel and refund", func(t *testing.T) {
		assert.False(t, order.ActionCancel.RequiresLabel())
		assert.False(t, order.ActionRefund.RequiresLabel())
	})
}
