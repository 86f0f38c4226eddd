package financial

import (
	"context"
	"strconv"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
	"github.com/Speakceo/speakceo-education-platform-sub002/tests"
)

const testKey = "financial:learner-1"

func setup(t *testing.T) (*Store, core.DocumentStore) {
	docs := testutil.OpenDocs(t)
	var n int
	s := NewStore(context.Background(), testKey, Options{
		Docs:   docs,
		Logger: testutil.NewLogger(t),
		NewID: func() string {
			n++
			return "it" + strconv.Itoa(n)
		},
	})
	return s, docs
}

func TestStore_addAndMetrics(t *testing.T) {
	ctx := context.Background()
	s, _ := setup(t)

	rev := s.AddRevenue(ctx, NewLineItem{Name: "Lemonade", Amount: 400})
	s.AddRevenue(ctx, NewLineItem{Name: "Cookies", Amount: 100})
	s.AddExpense(ctx, NewLineItem{Name: "Lemons", Amount: 125})

	state := s.State()
	assert.Equal(t, LineItem{ID: "it1", Name: "Lemonade", Amount: 400}, rev)
	assert.Len(t, state.Revenues, 2)
	assert.Len(t, state.Expenses, 1)
	assert.Equal(t, Metrics{TotalRevenue: 500, TotalExpenses: 125, NetProfit: 375, ProfitMargin: 75}, state.Metrics)
	assert.True(t, state.IsDirty)
	assert.Equal(t, 3, state.Version)
}

func TestStore_RemoveItem(t *testing.T) {
	ctx := context.Background()
	s, _ := setup(t)
	s.AddRevenue(ctx, NewLineItem{Name: "Lemonade", Amount: 400})
	exp := s.AddExpense(ctx, NewLineItem{Name: "Lemons", Amount: 500})

	require.NoError(t, s.RemoveItem(ctx, exp.ID))
	state := s.State()
	assert.Empty(t, state.Expenses)
	assert.Equal(t, Metrics{TotalRevenue: 400, NetProfit: 400, ProfitMargin: 100}, state.Metrics)
	assert.Equal(t, 3, state.Version)

	assert.Equal(t, ErrItemNotFound, s.RemoveItem(ctx, exp.ID))
	assert.Equal(t, 3, s.State().Version)
}

func TestComputeMetrics(t *testing.T) {
	tests := []struct {
		name     string
		revenues []LineItem
		expenses []LineItem
		want     Metrics
	}{
		{name: "empty", want: Metrics{}},
		{name: "no revenue", expenses: []LineItem{{Amount: 50}}, want: Metrics{TotalExpenses: 50, NetProfit: -50}},
		{name: "loss", revenues: []LineItem{{Amount: 200}}, expenses: []LineItem{{Amount: 300}}, want: Metrics{TotalRevenue: 200, TotalExpenses: 300, NetProfit: -100, ProfitMargin: -50}},
		{name: "rounded margin", revenues: []LineItem{{Amount: 3}}, expenses: []LineItem{{Amount: 2}}, want: Metrics{TotalRevenue: 3, TotalExpenses: 2, NetProfit: 1, ProfitMargin: 33.33}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeMetrics(tt.revenues, tt.expenses))
		})
	}
}

func TestStore_SaveResetAndReload(t *testing.T) {
	ctx := context.Background()
	s, docs := setup(t)
	s.AddRevenue(ctx, NewLineItem{Name: "Lemonade", Amount: 10})
	s.Save(ctx)

	reloaded := NewStore(ctx, testKey, Options{Docs: docs, Logger: testutil.NewLogger(t)})
	state := reloaded.State()
	assert.Equal(t, []LineItem{{ID: "it1", Name: "Lemonade", Amount: 10}}, state.Revenues)
	assert.Equal(t, 10.0, state.Metrics.TotalRevenue)
	assert.Equal(t, 2, state.Version)
	assert.False(t, state.IsDirty)

	reloaded.Reset(ctx)
	assert.Equal(t, emptyProjection(), reloaded.State())
}

func TestNewStore_dropsInvalidItems(t *testing.T) {
	docs := testutil.OpenDocs(t)
	testutil.SeedDocument(t, docs, testKey, `{"revenues":[{"id":"a","name":"ok","amount":5},{"name":"no id","amount":1}],"expenses":[{"id":"b","amount":-3}],"version":4}`)
	rec := testutil.NewRecorder()

	s := NewStore(context.Background(), testKey, Options{Docs: docs, Logger: testutil.NewLogger(t), Recorder: rec})

	state := s.State()
	assert.Len(t, state.Revenues, 1)
	assert.Empty(t, state.Expenses)
	assert.Equal(t, 4, state.Version)
	assert.Equal(t, 2, rec.Dropped)
}

func TestNewLineItem_Validate(t *testing.T) {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	tests := []struct {
		name    string
		item    NewLineItem
		wantErr bool
	}{
		{name: "valid", item: NewLineItem{Name: " Lemonade ", Amount: 3}},
		{name: "zero amount", item: NewLineItem{Name: "Free samples"}},
		{name: "blank name", item: NewLineItem{Name: "   ", Amount: 3}, wantErr: true},
		{name: "negative", item: NewLineItem{Name: "Refund", Amount: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate(validate)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, core.CleanString(tt.item.Name), tt.item.Name)
		})
	}
}
