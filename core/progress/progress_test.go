package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_businessModel(t *testing.T) {
	tests := []struct {
		name       string
		components int
		want       ToolProgress
	}{
		{name: "empty", components: 0, want: ToolProgress{0, StatusLocked}},
		{name: "one", components: 1, want: ToolProgress{10, StatusInProgress}},
		{name: "ten", components: 10, want: ToolProgress{100, StatusCompleted}},
		{name: "fifteen is capped", components: 15, want: ToolProgress{100, StatusCompleted}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Aggregate(Snapshot{ComponentCount: tt.components})
			assert.Equal(t, tt.want, r.Tools[ToolBusinessModel])
		})
	}
}

func TestAggregate_branding(t *testing.T) {
	tests := []struct {
		name  string
		brand Brand
		want  int
	}{
		{name: "placeholder", brand: Brand{Name: DefaultBrandName}, want: 0},
		{name: "blank", brand: Brand{Name: "  "}, want: 0},
		{name: "named", brand: Brand{Name: "Lemonade Co"}, want: 50},
		{name: "logo wins", brand: Brand{Name: DefaultBrandName, LogoURL: "https://cdn.example.com/logo.png"}, want: 100},
		{name: "tagline alone", brand: Brand{Tagline: "Fresh every day"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Aggregate(Snapshot{Brand: tt.brand})
			assert.Equal(t, tt.want, r.Tools[ToolBranding].Progress)
		})
	}
}

func TestAggregate_financialAndPitch(t *testing.T) {
	r := Aggregate(Snapshot{Financial: Financial{Revenues: 2, Expenses: 3}, Pitch: Pitch{Content: "Hi"}})
	assert.Equal(t, ToolProgress{50, StatusInProgress}, r.Tools[ToolFinancial])
	assert.Equal(t, ToolProgress{50, StatusInProgress}, r.Tools[ToolPitch])

	r = Aggregate(Snapshot{Financial: Financial{Revenues: 8, Expenses: 8}})
	assert.Equal(t, ToolProgress{100, StatusCompleted}, r.Tools[ToolFinancial])
	assert.Equal(t, ToolProgress{0, StatusLocked}, r.Tools[ToolPitch])
}

func TestAggregate_overall(t *testing.T) {
	r := Aggregate(Snapshot{
		ComponentCount: 12,
		Brand:          Brand{Name: "Lemonade Co"},
		Pitch:          Pitch{Content: "We sell lemonade."},
	})
	assert.Equal(t, 100, r.Tools[ToolBusinessModel].Progress)
	assert.Equal(t, 50, r.Tools[ToolBranding].Progress)
	assert.Equal(t, 0, r.Tools[ToolFinancial].Progress)
	assert.Equal(t, 50, r.Tools[ToolPitch].Progress)
	assert.Equal(t, 50, r.Overall)

	// (10+0+10+0)/4 = 5
	r = Aggregate(Snapshot{ComponentCount: 1, Financial: Financial{Revenues: 1}})
	assert.Equal(t, 5, r.Overall)

	// (30+0+0+0)/4 = 7.5
	r = Aggregate(Snapshot{ComponentCount: 3})
	assert.Equal(t, 8, r.Overall)
}

func TestAggregate_marketingIsLocked(t *testing.T) {
	r := Aggregate(Snapshot{ComponentCount: 10, Brand: Brand{LogoURL: "x"}, Financial: Financial{Revenues: 10}, Pitch: Pitch{Content: "x"}})
	assert.Equal(t, ToolProgress{0, StatusLocked}, r.Tools[ToolMarketing])
	assert.Len(t, r.Tools, 5)
	assert.Equal(t, 88, r.Overall) // (100+100+100+50)/4 = 87.5
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusLocked, StatusOf(0))
	assert.Equal(t, StatusInProgress, StatusOf(1))
	assert.Equal(t, StatusInProgress, StatusOf(99))
	assert.Equal(t, StatusCompleted, StatusOf(100))
}
