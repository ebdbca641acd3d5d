package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/core/common/validation"
)

type RecordMovementDTO struct {
	Type      string           `json:"type"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unitCost"`
	Reason    *string          `json:"reason"`
	ExpenseID *string          `json:"expenseId"`
}

func (dto RecordMovementDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("type", dto.Type).
		Required().
		OneOf(movementTypeNames(), internal.ErrCodeInvalidMovementType)
	v.Field("quantity", dto.Quantity).
		NonZero(internal.ErrCodeInvalidQuantity)
	if dto.UnitCost != nil {
		v.Field("unitCost", *dto.UnitCost).
			NonNegative(internal.ErrCodeValidationFailed)
	}
	v.Field("reason", dto.Reason).MaxLength(500)
	return v.Validate()
}
