package tests

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/Speakceo/speakceo-education-platform-sub002/apps/api/echo"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/brand"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/canvas"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/financial"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/pitch"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/progress"
)

func Test_financialApi(t *testing.T) {
	a := setup(t)
	token := getToken(t, "learner-1")

	tests := []httpTest{
		{
			name:     "blank name",
			method:   http.MethodPost,
			path:     "/v1/financials/revenues",
			body:     []byte(`{"name":"  ","amount":10}`),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"name":"this field is required"}`),
		},
		{
			name:     "unknown item",
			method:   http.MethodDelete,
			path:     "/v1/financials/items/ghost",
			token:    token,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "line item not found"}),
		},
	}
	runHTTPTests(t, a, tests)

	var rev, exp financial.LineItem
	code := a.do(t, http.MethodPost, "/v1/financials/revenues", token, financial.NewLineItem{Name: "Lemonade", Amount: 300}, &rev)
	require.Equal(t, http.StatusCreated, code)
	code = a.do(t, http.MethodPost, "/v1/financials/expenses", token, financial.NewLineItem{Name: "Lemons", Amount: 100}, &exp)
	require.Equal(t, http.StatusCreated, code)

	var proj financial.Projection
	a.do(t, http.MethodGet, "/v1/financials", token, nil, &proj)
	assert.Equal(t, []financial.LineItem{rev}, proj.Revenues)
	assert.Equal(t, []financial.LineItem{exp}, proj.Expenses)
	assert.Equal(t, financial.Metrics{TotalRevenue: 300, TotalExpenses: 100, NetProfit: 200, ProfitMargin: 66.67}, proj.Metrics)

	code = a.do(t, http.MethodDelete, "/v1/financials/items/"+exp.ID, token, nil, nil)
	assert.Equal(t, http.StatusNoContent, code)

	a.do(t, http.MethodPost, "/v1/financials/save", token, nil, &proj)
	assert.False(t, proj.IsDirty)
	assert.Equal(t, 4, proj.Version)

	a.do(t, http.MethodPost, "/v1/financials/reset", token, nil, &proj)
	assert.Empty(t, proj.Revenues)
	assert.Equal(t, 0, proj.Version)
}

func Test_pitchApi(t *testing.T) {
	a := setup(t)
	token := getToken(t, "learner-1")

	var p pitch.Pitch
	code := a.do(t, http.MethodPut, "/v1/pitch", token, pitch.UpdatePitch{Content: "We sell lemonade."}, &p)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, pitch.Pitch{Content: "We sell lemonade.", IsDirty: true, Version: 1}, p)

	var fldErrs map[string]string
	code = a.do(t, http.MethodPut, "/v1/pitch", token, pitch.UpdatePitch{Content: strings.Repeat("a", pitch.MaxContentLen+1)}, &fldErrs)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, fldErrs, "content")

	a.do(t, http.MethodPost, "/v1/pitch/save", token, nil, &p)
	assert.Equal(t, pitch.Pitch{Content: "We sell lemonade.", Version: 2}, p)

	a.do(t, http.MethodGet, "/v1/pitch", token, nil, &p)
	assert.Equal(t, 2, p.Version)

	a.do(t, http.MethodPost, "/v1/pitch/reset", token, nil, &p)
	assert.Equal(t, pitch.Pitch{}, p)
}

func Test_brandApi(t *testing.T) {
	a := setup(t)
	token := getToken(t, "learner-1")

	var id brand.Identity
	a.do(t, http.MethodGet, "/v1/brand", token, nil, &id)
	assert.Equal(t, brand.Placeholder(), id)

	tests := []httpTest{
		{
			name:     "bad logo",
			method:   http.MethodPut,
			path:     "/v1/brand",
			body:     []byte(`{"name":"Lemonade Co","logoUrl":"nope"}`),
			token:    token,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "ok",
			method:   http.MethodPut,
			path:     "/v1/brand",
			body:     []byte(`{"name":" Lemonade Co ","tagline":"Fresh every day"}`),
			token:    token,
			wantCode: http.StatusOK,
			wantData: []byte(`{"name":"Lemonade Co","tagline":"Fresh every day","logoUrl":""}`),
		},
	}
	runHTTPTests(t, a, tests)

	a.do(t, http.MethodGet, "/v1/brand", token, nil, &id)
	assert.Equal(t, "Lemonade Co", id.Name)
}

func Test_progressApi(t *testing.T) {
	a := setup(t)
	token := getToken(t, "learner-1")

	var report progress.Report
	code := a.do(t, http.MethodGet, "/v1/progress", token, nil, &report)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, report.Overall)
	assert.Len(t, report.Tools, 5)

	for i := 0; i < 10; i++ {
		a.do(t, http.MethodPost, "/v1/canvas/components", token, AddComponentRequest{Type: canvas.CustomerSegments}, nil)
	}
	a.do(t, http.MethodPut, "/v1/brand", token, brand.Identity{Name: "Lemonade Co"}, nil)
	a.do(t, http.MethodPut, "/v1/pitch", token, pitch.UpdatePitch{Content: "We sell lemonade."}, nil)

	a.do(t, http.MethodGet, "/v1/progress", token, nil, &report)
	assert.Equal(t, progress.Report{
		Tools: map[string]progress.ToolProgress{
			progress.ToolBusinessModel: {Progress: 100, Status: progress.StatusCompleted},
			progress.ToolBranding:      {Progress: 50, Status: progress.StatusInProgress},
			progress.ToolFinancial:     {Progress: 0, Status: progress.StatusLocked},
			progress.ToolPitch:         {Progress: 50, Status: progress.StatusInProgress},
			progress.ToolMarketing:     {Progress: 0, Status: progress.StatusLocked},
		},
		Overall: 50,
	}, report)
}

func Test_metrics(t *testing.T) {
	a := setup(t)
	a.do(t, http.MethodPost, "/v1/canvas/components", getToken(t, "learner-1"), AddComponentRequest{Type: canvas.Channels}, nil)

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `speakceo_store_mutations_total{op="add",outcome="applied",tool="business_model"} 1`)
	assert.Contains(t, string(body), `route="/v1/canvas/components"`)
}
