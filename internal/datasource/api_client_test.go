package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewAPIClient(srv.URL+"/", "tok-123", 2*time.Second)
	require.NoError(t, err)
	return c
}

func TestNewAPIClientValidates(t *testing.T) {
	_, err := NewAPIClient("", "tok", 0)
	assert.Error(t, err)
	_, err = NewAPIClient("http://127.0.0.1:8000/local", " ", 0)
	assert.Error(t, err)

	c, err := NewAPIClient("http://127.0.0.1:8000/local/", "tok", 0)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000/local", c.BaseURL())
}

func TestListWellsSendsTokenAndDecodes(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wells", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"well_name":"A"},{"well_name":"B"}]}`))
	})

	wells, err := c.ListWells(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Well{{Name: "A"}, {Name: "B"}}, wells)
}

func TestGetMonthlyProductionKeepsNulls(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/production/monthly", r.URL.Path)
		assert.Equal(t, []string{"A"}, r.URL.Query()["well_names"])
		_, _ = w.Write([]byte(`{"data":[
			{"well_name":"A","date":"2023-01-01","oil_rate":10,"wat_rate":null,"oil_cum":10,"wat_cum":null},
			{"well_name":"A","date":"2023-02-01","oil_rate":12.5,"wat_rate":3,"oil_cum":22.5,"wat_cum":3}
		]}`))
	})

	tbl, err := c.GetMonthlyProduction(context.Background(), []string{"A"})
	require.NoError(t, err)
	require.Len(t, tbl, 2)
	assert.Equal(t, "2023-01-01", tbl[0].Date)
	require.NotNil(t, tbl[0].OilRate)
	assert.Equal(t, 10.0, *tbl[0].OilRate)
	assert.Nil(t, tbl[0].WatRate)
	assert.Nil(t, tbl[0].WatCum)
	assert.Equal(t, 3.0, *tbl[1].WatCum)
}

func TestGetMonthlyProductionEmptyData(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null}`))
	})
	tbl, err := c.GetMonthlyProduction(context.Background(), []string{"A"})
	require.NoError(t, err)
	assert.NotNil(t, tbl)
	assert.Len(t, tbl, 0)
}

func TestStatusErrorOnUnauthorized(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	})
	_, err := c.ListWells(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "invalid token", se.Message)
}

func TestBadPayload(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})
	_, err := c.GetMonthlyProduction(context.Background(), []string{"A"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadPayload))
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewAPIClient(url, "tok", time.Second)
	require.NoError(t, err)
	_, err = c.ListWells(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}
