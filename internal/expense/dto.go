package expense

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/core/common/validation"
	"github.com/frahmantamala/bakery-hub/internal/payment"
)

// Optional distinguishes a field that was omitted from one sent as null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// SubmitExpenseDTO represents the request payload for creating an expense
type SubmitExpenseDTO struct {
	BakeryID            string           `json:"bakeryId"`
	Date                *string          `json:"date,omitempty"`
	CategoryID          *string          `json:"categoryId,omitempty"`
	CategoryName        *string          `json:"categoryName,omitempty"`
	AmountGNF           int64            `json:"amountGNF"`
	AmountEUR           *decimal.Decimal `json:"amountEUR,omitempty"`
	PaymentMethod       string           `json:"paymentMethod"`
	Description         *string          `json:"description,omitempty"`
	ReceiptURL          *string          `json:"receiptUrl,omitempty"`
	Comments            *string          `json:"comments,omitempty"`
	TransactionRef      *string          `json:"transactionRef,omitempty"`
	SupplierID          *string          `json:"supplierId,omitempty"`
	IsInventoryPurchase bool             `json:"isInventoryPurchase"`
}

// Validate reports every offending field in one error.
func (dto SubmitExpenseDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("paymentMethod", dto.PaymentMethod).
		Required().
		OneOf(payment.Names(), internal.ErrCodeInvalidPaymentMethod)
	v.Field("amountGNF", dto.AmountGNF).
		Positive(internal.ErrCodeInvalidAmount)
	v.Field("category", dto).
		Custom(func(interface{}) *internal.AppError {
			if blank(dto.CategoryID) && blank(dto.CategoryName) {
				return internal.NewValidationFieldError("category", "categoryId or categoryName is required", internal.ErrCodeInvalidCategory)
			}
			return nil
		})
	if dto.Date != nil {
		v.Field("date", *dto.Date).
			Custom(func(value interface{}) *internal.AppError {
				if _, err := ParseDate(value.(string), time.UTC); err != nil {
					return internal.NewValidationFieldError("date", "date must be YYYY-MM-DD or an RFC 3339 timestamp", internal.ErrCodeInvalidDate)
				}
				return nil
			})
	}
	v.Field("description", dto.Description).MaxLength(1000)
	v.Field("comments", dto.Comments).MaxLength(2000)
	return v.Validate()
}

// UpdateExpenseDTO is a partial update. An omitted field keeps its value; null or ""
// clears a nullable field.
type UpdateExpenseDTO struct {
	CategoryID          Optional[string]          `json:"categoryId"`
	CategoryName        Optional[string]          `json:"categoryName"`
	AmountGNF           Optional[int64]           `json:"amountGNF"`
	AmountEUR           Optional[decimal.Decimal] `json:"amountEUR"`
	PaymentMethod       Optional[string]          `json:"paymentMethod"`
	Description         Optional[string]          `json:"description"`
	ReceiptURL          Optional[string]          `json:"receiptUrl"`
	Comments            Optional[string]          `json:"comments"`
	TransactionRef      Optional[string]          `json:"transactionRef"`
	SupplierID          Optional[string]          `json:"supplierId"`
	IsInventoryPurchase Optional[bool]            `json:"isInventoryPurchase"`
}

// Validate only checks the supplied fields.
func (dto UpdateExpenseDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if dto.PaymentMethod.Set {
		v.Field("paymentMethod", dto.PaymentMethod.Value).
			OneOf(payment.Names(), internal.ErrCodeInvalidPaymentMethod)
	}
	if dto.AmountGNF.Set {
		v.Field("amountGNF", dto.AmountGNF.Value).
			Positive(internal.ErrCodeInvalidAmount)
	}
	if dto.Description.Set {
		v.Field("description", dto.Description.Value).MaxLength(1000)
	}
	if dto.Comments.Set {
		v.Field("comments", dto.Comments.Value).MaxLength(2000)
	}
	return v.Validate()
}

// Apply copies the supplied fields onto e.
func (dto UpdateExpenseDTO) Apply(e *Expense) {
	if dto.CategoryID.Set {
		e.CategoryID = nullableString(dto.CategoryID)
	}
	if dto.CategoryName.Set {
		e.CategoryName = dto.CategoryName.Value
	}
	if dto.AmountGNF.Set {
		e.AmountGNF = dto.AmountGNF.Value
	}
	if dto.AmountEUR.Set {
		if dto.AmountEUR.Null {
			e.AmountEUR = decimal.NullDecimal{}
		} else {
			e.AmountEUR = decimal.NewNullDecimal(dto.AmountEUR.Value)
		}
	}
	if dto.PaymentMethod.Set {
		e.PaymentMethod = payment.Method(dto.PaymentMethod.Value)
	}
	if dto.Description.Set {
		e.Description = nullableString(dto.Description)
	}
	if dto.ReceiptURL.Set {
		e.ReceiptURL = nullableString(dto.ReceiptURL)
	}
	if dto.Comments.Set {
		e.Comments = nullableString(dto.Comments)
	}
	if dto.TransactionRef.Set {
		e.TransactionRef = nullableString(dto.TransactionRef)
	}
	if dto.SupplierID.Set {
		e.SupplierID = nullableString(dto.SupplierID)
	}
	if dto.IsInventoryPurchase.Set {
		e.IsInventoryPurchase = dto.IsInventoryPurchase.Value
	}
}

// DecideExpenseDTO is the body of the approve endpoint.
type DecideExpenseDTO struct {
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

func (dto DecideExpenseDTO) Trigger() (Trigger, error) {
	switch dto.Action {
	case "approve":
		return TriggerApprove, nil
	case "reject":
		return TriggerReject, nil
	}
	return "", internal.ErrInvalidAction
}

// ListExpensesQuery filters a bakery's expenses.
type ListExpensesQuery struct {
	BakeryID string
	Status   string
	Limit    int
	Offset   int
}

func (q ListExpensesQuery) Validate() *internal.AppError {
	if strings.TrimSpace(q.BakeryID) == "" {
		return internal.ErrBakeryRequired
	}
	if q.Status != "" && !Status(q.Status).Valid() {
		return internal.NewValidationFieldError("status", "Invalid status. Must be Pending, Approved, or Rejected", internal.ErrCodeValidationFailed)
	}
	return nil
}

// ParseDate accepts a calendar date (read in loc) or a full RFC 3339 timestamp.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func nullableString(o Optional[string]) *string {
	if o.Null || o.Value == "" {
		return nil
	}
	v := o.Value
	return &v
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
