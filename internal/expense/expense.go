package expense

import (
	"time"

	"github.com/shopspring/decimal"

	expenseDatamodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/expense"
	"github.com/frahmantamala/bakery-hub/internal/payment"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Trigger is what causes a status transition.
type Trigger string

const (
	TriggerEditorEdit  Trigger = "editor_edit"
	TriggerManagerEdit Trigger = "manager_edit"
	TriggerApprove     Trigger = "approve"
	TriggerReject      Trigger = "reject"
)

// transitions is the complete lifecycle. A (status, trigger) pair missing here is not allowed.
// Approved and Rejected are terminal: only a manager edit touches them and it keeps the status.
var transitions = map[Status]map[Trigger]Status{
	StatusPending: {
		TriggerEditorEdit:  StatusPending,
		TriggerManagerEdit: StatusPending,
		TriggerApprove:     StatusApproved,
		TriggerReject:      StatusRejected,
	},
	StatusApproved: {
		TriggerManagerEdit: StatusApproved,
	},
	StatusRejected: {
		TriggerManagerEdit: StatusRejected,
	},
}

func NextStatus(from Status, trigger Trigger) (Status, bool) {
	next, ok := transitions[from][trigger]
	return next, ok
}

type CategoryRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameFr string `json:"nameFr,omitempty"`
	Color  string `json:"color,omitempty"`
}

type SupplierRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
}

type Expense struct {
	ID                  string              `json:"id"`
	BakeryID            string              `json:"bakeryId"`
	Date                time.Time           `json:"date"`
	CategoryID          *string             `json:"categoryId"`
	CategoryName        string              `json:"categoryName"`
	AmountGNF           int64               `json:"amountGNF"`
	AmountEUR           decimal.NullDecimal `json:"amountEUR"`
	PaymentMethod       payment.Method      `json:"paymentMethod"`
	Status              Status              `json:"status"`
	Description         *string             `json:"description"`
	ReceiptURL          *string             `json:"receiptUrl"`
	Comments            *string             `json:"comments"`
	TransactionRef      *string             `json:"transactionRef"`
	SupplierID          *string             `json:"supplierId"`
	IsInventoryPurchase bool                `json:"isInventoryPurchase"`
	CreatedBy           string              `json:"createdBy"`
	CreatedByName       string              `json:"createdByName"`
	LastModifiedBy      *string             `json:"lastModifiedBy"`
	LastModifiedByName  *string             `json:"lastModifiedByName"`
	LastModifiedAt      *time.Time          `json:"lastModifiedAt"`
	ApprovedBy          *string             `json:"approvedBy"`
	ApprovedByName      *string             `json:"approvedByName"`
	ApprovedAt          *time.Time          `json:"approvedAt"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
	Category            *CategoryRef        `json:"category,omitempty"`
	Supplier            *SupplierRef        `json:"supplier,omitempty"`
}

func (e *Expense) IsPending() bool {
	return e.Status == StatusPending
}

// AppendRejection returns the comments with "[Rejected: reason]" on a new line after any existing text.
func AppendRejection(comments *string, reason string) string {
	annotation := "[Rejected: " + reason + "]"
	if comments == nil || *comments == "" {
		return annotation
	}
	return *comments + "\n" + annotation
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:                  e.ID,
		BakeryID:            e.BakeryID,
		Date:                e.Date,
		CategoryID:          e.CategoryID,
		CategoryName:        e.CategoryName,
		AmountGNF:           e.AmountGNF,
		AmountEUR:           e.AmountEUR,
		PaymentMethod:       string(e.PaymentMethod),
		Status:              string(e.Status),
		Description:         e.Description,
		ReceiptURL:          e.ReceiptURL,
		Comments:            e.Comments,
		TransactionRef:      e.TransactionRef,
		SupplierID:          e.SupplierID,
		IsInventoryPurchase: e.IsInventoryPurchase,
		CreatedBy:           e.CreatedBy,
		CreatedByName:       e.CreatedByName,
		LastModifiedBy:      e.LastModifiedBy,
		LastModifiedByName:  e.LastModifiedByName,
		LastModifiedAt:      e.LastModifiedAt,
		ApprovedBy:          e.ApprovedBy,
		ApprovedByName:      e.ApprovedByName,
		ApprovedAt:          e.ApprovedAt,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	result := &Expense{
		ID:                  e.ID,
		BakeryID:            e.BakeryID,
		Date:                e.Date,
		CategoryID:          e.CategoryID,
		CategoryName:        e.CategoryName,
		AmountGNF:           e.AmountGNF,
		AmountEUR:           e.AmountEUR,
		PaymentMethod:       payment.Method(e.PaymentMethod),
		Status:              Status(e.Status),
		Description:         e.Description,
		ReceiptURL:          e.ReceiptURL,
		Comments:            e.Comments,
		TransactionRef:      e.TransactionRef,
		SupplierID:          e.SupplierID,
		IsInventoryPurchase: e.IsInventoryPurchase,
		CreatedBy:           e.CreatedBy,
		CreatedByName:       e.CreatedByName,
		LastModifiedBy:      e.LastModifiedBy,
		LastModifiedByName:  e.LastModifiedByName,
		LastModifiedAt:      e.LastModifiedAt,
		ApprovedBy:          e.ApprovedBy,
		ApprovedByName:      e.ApprovedByName,
		ApprovedAt:          e.ApprovedAt,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}

	if e.Category != nil {
		result.Category = &CategoryRef{
			ID:     e.Category.ID,
			Name:   e.Category.Name,
			NameFr: e.Category.NameFr,
			Color:  e.Category.Color,
		}
	}
	if e.Supplier != nil {
		result.Supplier = &SupplierRef{
			ID:    e.Supplier.ID,
			Name:  e.Supplier.Name,
			Phone: e.Supplier.Phone,
		}
	}

	return result
}

func FromDataModelSlice(expenses []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(expenses))
	for i, e := range expenses {
		result[i] = FromDataModel(e)
	}
	return result
}
