package summary

import (
	"time"

	summaryDatamodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/summary"
	"github.com/frahmantamala/bakery-hub/internal/payment"
)

const DateLayout = "2006-01-02"

// DailySummary is the running total of approved expenses for one bakery and one calendar day.
type DailySummary struct {
	ID                  string    `json:"id"`
	BakeryID            string    `json:"bakeryId"`
	Date                string    `json:"date"`
	DailyCashExpenses   int64     `json:"dailyCashExpenses"`
	DailyOrangeExpenses int64     `json:"dailyOrangeExpenses"`
	DailyCardExpenses   int64     `json:"dailyCardExpenses"`
	TotalExpenses       int64     `json:"totalExpenses"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Accrual adds one approved expense to the summary of its day.
type Accrual struct {
	BakeryID string
	Day      time.Time
	Buckets  payment.Buckets
}

// DayOf returns the calendar day of t as seen in loc, as midnight UTC of that date.
// Two instants that fall on the same local day always map to the same value.
func DayOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func NewAccrual(bakeryID string, expenseDate time.Time, method payment.Method, amountGNF int64, loc *time.Location) Accrual {
	return Accrual{
		BakeryID: bakeryID,
		Day:      DayOf(expenseDate, loc),
		Buckets:  payment.Split(method, amountGNF),
	}
}

func FromDataModel(s *summaryDatamodel.DailySummary) *DailySummary {
	buckets := payment.Buckets{
		Cash:   s.DailyCashExpenses,
		Orange: s.DailyOrangeExpenses,
		Card:   s.DailyCardExpenses,
	}
	return &DailySummary{
		ID:                  s.ID,
		BakeryID:            s.BakeryID,
		Date:                s.Date.UTC().Format(DateLayout),
		DailyCashExpenses:   s.DailyCashExpenses,
		DailyOrangeExpenses: s.DailyOrangeExpenses,
		DailyCardExpenses:   s.DailyCardExpenses,
		TotalExpenses:       buckets.Total(),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*summaryDatamodel.DailySummary) []*DailySummary {
	result := make([]*DailySummary, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
