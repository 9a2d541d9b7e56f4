package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"well-dashboard/internal/callback"
	"well-dashboard/internal/datasource"
	"well-dashboard/internal/services"
	"well-dashboard/internal/util"
)

type stubSource struct {
	tables map[string]datasource.ProductionTable
	err    error
}

func (s stubSource) GetMonthlyProduction(_ context.Context, wells []string) (datasource.ProductionTable, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tables[wells[0]], nil
}

var f = datasource.Float

func sampleSource() stubSource {
	return stubSource{tables: map[string]datasource.ProductionTable{
		"W-1": {
			{WellName: "W-1", Date: "2021-01-01", OilRate: f(1200.5), WatRate: f(40), OilCum: f(1200.5), WatCum: f(40)},
			{WellName: "W-1", Date: "2021-02-01", OilRate: f(1100), WatRate: f(55), OilCum: f(2300.5), WatCum: f(95)},
		},
	}}
}

func snapshot(names ...string) services.WellSnapshot {
	ws := make([]datasource.Well, 0, len(names))
	for _, n := range names {
		ws = append(ws, datasource.Well{Name: n})
	}
	return services.NewWellSnapshot(ws)
}

func dashboardFor(src services.ProductionFetcher) (*services.Dashboard, *callback.Registry) {
	dash := services.NewDashboard(src, nil)
	reg := callback.NewRegistry()
	reg.MustRegister(dash.Binding())
	return dash, reg
}

func TestDashboardPageRendersFourCharts(t *testing.T) {
	_, reg := dashboardFor(sampleSource())
	h := NewDashboardHandler(DashboardDeps{AppName: "wells", Wells: snapshot("W-1", "W-2"), Registry: reg})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 4, strings.Count(body, "<svg"))
	assert.Contains(t, body, `<option value="W-1" selected>`)
	assert.Contains(t, body, "Latest 1,100 (2021-02), 2 points")
	assert.NotContains(t, body, services.ErrorPlaceholder)
}

func TestDashboardPageErrorReplacesAllPanels(t *testing.T) {
	_, reg := dashboardFor(stubSource{err: datasource.ErrUnavailable})
	h := NewDashboardHandler(DashboardDeps{Wells: snapshot("W-1"), Registry: reg})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/?well=W-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 4, strings.Count(body, services.ErrorPlaceholder))
	assert.Equal(t, 0, strings.Count(body, "<svg"))
	assert.Contains(t, body, util.CodeUnavailable)
}

func TestDashboardPageEmptyWell(t *testing.T) {
	_, reg := dashboardFor(sampleSource())
	h := NewDashboardHandler(DashboardDeps{Wells: snapshot("W-1", "W-9"), Registry: reg})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/?well=W-9", nil))

	body := rec.Body.String()
	assert.Equal(t, 4, strings.Count(body, "No data</div>"))
	assert.Contains(t, body, "No production data recorded for W-9")
}

func TestDashboardPageDuplicateDatesRenderAllPanels(t *testing.T) {
	src := stubSource{tables: map[string]datasource.ProductionTable{
		"W-1": {
			{WellName: "W-1", Date: "2021-01-01", OilRate: f(10), OilCum: f(300)},
			{WellName: "W-1", Date: "2021-01-01", OilRate: f(12)},
			{WellName: "W-1", Date: "2021-02-01", OilCum: f(640), WatRate: f(1), WatCum: f(1)},
		},
	}}
	_, reg := dashboardFor(src)
	h := NewDashboardHandler(DashboardDeps{Wells: snapshot("W-1"), Registry: reg})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/?well=W-1", nil))

	body := rec.Body.String()
	assert.Equal(t, 4, strings.Count(body, "<svg"))
	assert.NotContains(t, body, services.ErrorPlaceholder)
}

func TestPanelsNeverPartial(t *testing.T) {
	d := DashboardDeps{Logger: zap.NewNop()}
	good := services.BuildChart(services.Series{{Date: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), Value: 1}}, services.OilRateStyle)
	outs := map[string]any{
		services.IDOilRate:   good,
		services.IDWaterRate: good,
		services.IDOilCum:    good,
		services.IDWaterCum:  42, // output tak dikenal
	}
	views, failed := d.panels("W-1", outs)
	require.True(t, failed)
	require.Len(t, views, 4)
	for _, v := range views {
		assert.Equal(t, services.ErrorPlaceholder, v.Placeholder)
		assert.Empty(t, v.SVG)
	}
}

func TestDashboardPageUnlistedWellIsSelected(t *testing.T) {
	_, reg := dashboardFor(sampleSource())
	h := NewDashboardHandler(DashboardDeps{Wells: snapshot("W-2", "W-1"), Registry: reg})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/?well=W-1", nil))
	assert.Contains(t, rec.Body.String(), `<option value="W-1" selected>`)
	assert.Equal(t, 1, strings.Count(rec.Body.String(), " selected>"))

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/?well=X-77", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `<option value="X-77" selected>X-77</option>`)
	assert.Equal(t, 1, strings.Count(body, " selected>"))
}

func TestDashboardPageNoWells(t *testing.T) {
	_, reg := dashboardFor(sampleSource())
	h := NewDashboardHandler(DashboardDeps{Wells: snapshot(), Registry: reg})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No wells available")
}

func TestChartsHandlerEncodedWellName(t *testing.T) {
	src := stubSource{tables: map[string]datasource.ProductionTable{
		"A/B 1": {{WellName: "A/B 1", Date: "2021-01-01", OilRate: f(1)}},
	}}
	dash, _ := dashboardFor(src)

	r := mux.NewRouter().UseEncodedPath()
	r.HandleFunc("/api/wells/{well}/charts", NewChartsHandler(dash))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/wells/A%2FB%201/charts", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Well   string `json:"well"`
		Status string `json:"status"`
		Panels []struct {
			ID     string          `json:"id"`
			Figure json.RawMessage `json:"figure"`
		} `json:"panels"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "A/B 1", got.Well)
	assert.Equal(t, services.StatusOK, got.Status)
	require.Len(t, got.Panels, 4)
	assert.Equal(t, services.IDOilRate, got.Panels[0].ID)
	assert.NotEmpty(t, got.Panels[0].Figure)
}

func TestWellsHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewWellsHandler(snapshot("W-2", "W-1"))(rec, httptest.NewRequest(http.MethodGet, "/api/wells", nil))

	var got struct {
		Wells   []string `json:"wells"`
		Default string   `json:"default"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"W-2", "W-1"}, got.Wells)
	assert.Equal(t, "W-2", got.Default)
}

func postCallback(t *testing.T, h http.HandlerFunc, body string) (*httptest.ResponseRecorder, callback.Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/api/callback", strings.NewReader(body)))
	var resp callback.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestCallbackHandler(t *testing.T) {
	_, reg := dashboardFor(sampleSource())
	h := NewCallbackHandler(reg, nil)

	rec, resp := postCallback(t, h, `{"callback":"update_graphs","inputs":{"well-dropdown":"W-1"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Len(t, resp.Outputs, 5)
	assert.Contains(t, resp.Outputs, services.IDWaterCum)

	rec, resp = postCallback(t, h, `{"callback":"nope","inputs":{}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)

	rec, _ = postCallback(t, h, `{"callback":"update_graphs","inputs":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = postCallback(t, h, `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportHandler(t *testing.T) {
	r := mux.NewRouter().UseEncodedPath()
	r.HandleFunc("/api/wells/{well}/export.xlsx", NewExportHandler(ExportDeps{Source: sampleSource()}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/wells/W-1/export.xlsx", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "W-1.xlsx")

	wb, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer wb.Close()
	v, err := wb.GetCellValue("W-1", "B2")
	require.NoError(t, err)
	assert.Equal(t, "1200.5", v)
}

func TestExportHandlerSourceError(t *testing.T) {
	r := mux.NewRouter().UseEncodedPath()
	src := stubSource{err: &datasource.StatusError{StatusCode: http.StatusNotFound, Message: "missing"}}
	r.HandleFunc("/api/wells/{well}/export.xlsx", NewExportHandler(ExportDeps{Source: src}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/wells/W-1/export.xlsx", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginHandler(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)
	h := NewLoginHandler(LoginDeps{
		User:     "admin",
		PassHash: string(hash),
		Secret:   "s3cret",
		TTL:      time.Hour,
		Clock:    util.FixedClock{T: time.Now()},
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"rahasia"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp loginResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.Role)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"salah"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginHandlerNotConfigured(t *testing.T) {
	rec := httptest.NewRecorder()
	NewLoginHandler(LoginDeps{})(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"a","password":"b"}`)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMetricsHandler(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewMetricsHandler(MetricsDeps{
		Stats:   func() (int64, int64) { return 7, 2 },
		Wells:   func() int { return 3 },
		Started: start,
		Clock:   util.FixedClock{T: start.Add(90 * time.Second)},
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "app_uptime_seconds 90\n")
	assert.Contains(t, body, "wells_loaded 3\n")
	assert.Contains(t, body, "well_selections_total 7\n")
	assert.Contains(t, body, "well_selection_failures_total 2\n")
}

func TestSourceStatusRedactsEndpoint(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewSourceStatusHandler(SourceStatusDeps{
		Kind:     "api",
		Endpoint: "https://user:pw@example.com/open?token=x",
		Wells:    func() []string { return []string{"W-1"} },
		Bindings: func() []string { return []string{services.CallbackUpdateGraphs} },
		Stats:    func() (int64, int64) { return 1, 0 },
		Started:  start,
		Clock:    util.FixedClock{T: start.Add(time.Minute)},
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/admin/source", nil))

	var got sourceStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "https://example.com/open", got.Endpoint)
	assert.Equal(t, 1, got.WellCount)
	assert.Equal(t, []string{services.CallbackUpdateGraphs}, got.Callbacks)
	assert.Equal(t, int64(60), got.UptimeSec)
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
