package financial

import (
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
)

// Kind of line item.
type Kind string

const (
	Revenue Kind = "revenue"
	Expense Kind = "expense"
)

// LineItem is a single revenue or expense of a projection.
type LineItem struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// NewLineItem contains information needed to add a LineItem.
type NewLineItem struct {
	Name   string  `json:"name" validate:"required,notblank,max=100"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

func (ni *NewLineItem) Validate(validate *validator.Validate) error {
	ni.Name = core.CleanString(ni.Name)
	return validate.Struct(ni)
}

// Metrics are derived from the line items on every mutation.
type Metrics struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetProfit     float64 `json:"netProfit"`
	ProfitMargin  float64 `json:"profitMargin"` // percent of revenue, 0 without revenue
}

type Projection struct {
	Revenues []LineItem `json:"revenues"`
	Expenses []LineItem `json:"expenses"`
	Metrics  Metrics    `json:"metrics"`
	IsDirty  bool       `json:"isDirty"`
	Version  int        `json:"version"`
}

func emptyProjection() Projection {
	return Projection{
		Revenues: []LineItem{},
		Expenses: []LineItem{},
	}
}

func (p Projection) clone() Projection {
	c := p
	c.Revenues = append(make([]LineItem, 0, len(p.Revenues)), p.Revenues...)
	c.Expenses = append(make([]LineItem, 0, len(p.Expenses)), p.Expenses...)
	return c
}

// ComputeMetrics derives the totals of a projection from its line items.
func ComputeMetrics(revenues, expenses []LineItem) Metrics {
	var m Metrics
	for _, it := range revenues {
		m.TotalRevenue += it.Amount
	}
	for _, it := range expenses {
		m.TotalExpenses += it.Amount
	}
	m.NetProfit = m.TotalRevenue - m.TotalExpenses
	if m.TotalRevenue > 0 {
		m.ProfitMargin = math.Round(m.NetProfit/m.TotalRevenue*10000) / 100
	}
	return m
}
