package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stock_analyzer/internal/feature/metrics/domain"
	"stock_analyzer/internal/feature/metrics/domain/entity"
	pricesdomain "stock_analyzer/internal/feature/prices/domain"
)

// mockMetricsUsecase is a mock implementation of the MetricsUsecase interface.
type mockMetricsUsecase struct {
	GetMetricsFunc func(ctx context.Context, symbol string, start, end time.Time) (*entity.Metrics, error)
}

func (m *mockMetricsUsecase) GetMetrics(ctx context.Context, symbol string, start, end time.Time) (*entity.Metrics, error) {
	return m.GetMetricsFunc(ctx, symbol, start, end)
}

func TestMetricsHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	okMetrics := &entity.Metrics{
		Symbol: "TCS.NS",
		Summary: entity.Summary{
			HighestPrice:   120,
			LowestPrice:    90,
			AveragePrice:   105,
			BestTimeToSell: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
			BestTimeToBuy:  time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			TotalReturnPct: 5,
			VolatilityPct:  2.5,
			AverageVolume:  1200,
			MaxVolume:      1400,
		},
	}

	tests := []struct {
		name           string
		url            string
		getFunc        func(ctx context.Context, symbol string, start, end time.Time) (*entity.Metrics, error)
		expectedStatus int
	}{
		{
			name: "success",
			url:  "/metrics/TCS.NS?start=2024-01-01&end=2024-06-30",
			getFunc: func(ctx context.Context, symbol string, start, end time.Time) (*entity.Metrics, error) {
				return okMetrics, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing start date",
			url:            "/metrics/TCS.NS?end=2024-06-30",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed end date",
			url:            "/metrics/TCS.NS?start=2024-01-01&end=June",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "range inverted",
			url:  "/metrics/TCS.NS?start=2024-06-30&end=2024-01-01",
			getFunc: func(ctx context.Context, symbol string, start, end time.Time) (*entity.Metrics, error) {
				return nil, pricesdomain.ErrInvalidRange
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown symbol",
			url:  "/metrics/NOPE.NS?start=2024-01-01&end=2024-06-30",
			getFunc: func(ctx context.Context, symbol string, start, end time.Time) (*entity.Metrics, error) {
				return nil, pricesdomain.ErrUnknownSymbol
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "not enough history",
			url:  "/metrics/TCS.NS?start=2024-01-01&end=2024-01-02",
			getFunc: func(ctx context.Context, symbol string, start, end time.Time) (*entity.Metrics, error) {
				return nil, domain.ErrInsufficientData
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "provider down",
			url:  "/metrics/TCS.NS?start=2024-01-01&end=2024-06-30",
			getFunc: func(ctx context.Context, symbol string, start, end time.Time) (*entity.Metrics, error) {
				return nil, pricesdomain.ErrNoData
			},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name: "unexpected error",
			url:  "/metrics/TCS.NS?start=2024-01-01&end=2024-06-30",
			getFunc: func(ctx context.Context, symbol string, start, end time.Time) (*entity.Metrics, error) {
				return nil, errors.New("boom")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewMetricsHandler(&mockMetricsUsecase{GetMetricsFunc: tt.getFunc})
			r := gin.New()
			r.GET("/metrics/:code", h.Get)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestMetricsHandler_Get_Body(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewMetricsHandler(&mockMetricsUsecase{
		GetMetricsFunc: func(ctx context.Context, symbol string, start, end time.Time) (*entity.Metrics, error) {
			return &entity.Metrics{
				Symbol: "TCS.NS",
				Summary: entity.Summary{
					HighestPrice:   120,
					BestTimeToSell: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
					BestTimeToBuy:  time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
				},
			}, nil
		},
	})
	r := gin.New()
	r.GET("/metrics/:code", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/metrics/TCS.NS?start=2024-01-01&end=2024-06-30", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"symbol":"TCS.NS"`)
	assert.Contains(t, w.Body.String(), `"best_time_to_sell":"2024-01-04"`)
	assert.Contains(t, w.Body.String(), `"best_time_to_buy":"2024-01-03"`)
}

func TestMetricsHandler_Get_IndicatorSeries(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewMetricsHandler(&mockMetricsUsecase{
		GetMetricsFunc: func(ctx context.Context, symbol string, start, end time.Time) (*entity.Metrics, error) {
			return &entity.Metrics{
				Symbol: "TCS.NS",
				Series: entity.IndicatorSeries{
					Dates: []time.Time{
						time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
						time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
					},
					MA20:       []float64{math.NaN(), 101.5},
					MA50:       []float64{math.NaN(), math.NaN()},
					RSI:        []float64{math.NaN(), 100},
					MACD:       []float64{0, 0.25},
					SignalLine: []float64{0, 0.05},
				},
			}, nil
		},
	})
	r := gin.New()
	r.GET("/metrics/:code", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/metrics/TCS.NS?start=2024-01-01&end=2024-06-30", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// NaN warm-up positions render as null and the series keeps its length.
	assert.Contains(t, w.Body.String(), `"dates":["2024-01-01","2024-01-02"]`)
	assert.Contains(t, w.Body.String(), `"ma_20":[null,101.5]`)
	assert.Contains(t, w.Body.String(), `"ma_50":[null,null]`)
	assert.Contains(t, w.Body.String(), `"macd":[0,0.25]`)
}

func TestMetricsHandler_Get_NonFiniteTotalReturn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// A zero first close makes the total return infinite. The response must
	// still serialize, with a null in its place.
	h := NewMetricsHandler(&mockMetricsUsecase{
		GetMetricsFunc: func(ctx context.Context, symbol string, start, end time.Time) (*entity.Metrics, error) {
			return &entity.Metrics{
				Symbol:  "TCS.NS",
				Summary: entity.Summary{TotalReturnPct: math.Inf(1)},
			}, nil
		},
	})
	r := gin.New()
	r.GET("/metrics/:code", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/metrics/TCS.NS?start=2024-01-01&end=2024-06-30", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_return_pct":null`)
}
