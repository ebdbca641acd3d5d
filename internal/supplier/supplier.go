package supplier

import (
	supplierDatamodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/supplier"
)

type Supplier struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	PaymentTerms *string `json:"paymentTerms"`
	IsActive     bool    `json:"isActive"`
}

func FromDataModel(s *supplierDatamodel.Supplier) *Supplier {
	return &Supplier{
		ID:           s.ID,
		Name:         s.Name,
		Phone:        s.Phone,
		Email:        s.Email,
		Address:      s.Address,
		PaymentTerms: s.PaymentTerms,
		IsActive:     s.IsActive,
	}
}

func FromDataModelSlice(rows []*supplierDatamodel.Supplier) []*Supplier {
	result := make([]*Supplier, 0, len(rows))
	for _, row := range rows {
		result = append(result, FromDataModel(row))
	}
	return result
}
