// Package handler provides HTTP handlers for the metrics feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stock_analyzer/internal/api"
	"stock_analyzer/internal/feature/metrics/domain"
	"stock_analyzer/internal/feature/metrics/domain/entity"
	"stock_analyzer/internal/feature/metrics/transport/http/dto"
	pricesdomain "stock_analyzer/internal/feature/prices/domain"
)

const dateLayout = "2006-01-02"

// MetricsUsecase defines the metric operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type MetricsUsecase interface {
	GetMetrics(ctx context.Context, symbol string, start, end time.Time) (*entity.Metrics, error)
}

// MetricsHandler handles HTTP requests for stock metrics.
type MetricsHandler struct {
	uc MetricsUsecase
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(uc MetricsUsecase) *MetricsHandler {
	return &MetricsHandler{uc: uc}
}

// Get computes metrics for one symbol over a date range.
//
// GET /metrics/:code?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *MetricsHandler) Get(c *gin.Context) {
	code := c.Param("code")

	start, err := time.Parse(dateLayout, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid start date, expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid end date, expected YYYY-MM-DD"})
		return
	}

	m, err := h.uc.GetMetrics(c.Request.Context(), code, start, end)
	if err != nil {
		switch {
		case errors.Is(err, pricesdomain.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "start date must be before end date"})
		case errors.Is(err, pricesdomain.ErrUnknownSymbol):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "symbol not found"})
		case errors.Is(err, domain.ErrInsufficientData):
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "not enough price history in range"})
		case errors.Is(err, pricesdomain.ErrNoData):
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "market data unavailable"})
		default:
			slog.Error("metrics calculation failed", "symbol", code, "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, toResponse(m))
}

func toResponse(m *entity.Metrics) dto.MetricsResponse {
	return dto.MetricsResponse{
		Symbol: m.Symbol,
		Summary: dto.SummaryResponse{
			HighestPrice:   m.Summary.HighestPrice,
			LowestPrice:    m.Summary.LowestPrice,
			AveragePrice:   m.Summary.AveragePrice,
			BestTimeToSell: m.Summary.BestTimeToSell.Format(dateLayout),
			BestTimeToBuy:  m.Summary.BestTimeToBuy.Format(dateLayout),
			TotalReturnPct: nanToNil(m.Summary.TotalReturnPct),
			VolatilityPct:  nanToNil(m.Summary.VolatilityPct),
			AverageVolume:  m.Summary.AverageVolume,
			MaxVolume:      m.Summary.MaxVolume,
		},
		Indicators: dto.IndicatorsResponse{
			MA20:       nanToNil(m.Indicators.MA20),
			MA50:       nanToNil(m.Indicators.MA50),
			RSI:        nanToNil(m.Indicators.RSI),
			MACD:       nanToNil(m.Indicators.MACD),
			SignalLine: nanToNil(m.Indicators.SignalLine),
		},
		Series: dto.IndicatorSeriesResponse{
			Dates:      formatDates(m.Series.Dates),
			MA20:       seriesToNil(m.Series.MA20),
			MA50:       seriesToNil(m.Series.MA50),
			RSI:        seriesToNil(m.Series.RSI),
			MACD:       seriesToNil(m.Series.MACD),
			SignalLine: seriesToNil(m.Series.SignalLine),
		},
		Risk: dto.RiskResponse{
			SharpeRatio:    nanToNil(m.Risk.SharpeRatio),
			MaxDrawdown:    m.Risk.MaxDrawdown,
			ValueAtRisk95:  nanToNil(m.Risk.ValueAtRisk95),
			StdDeviation:   nanToNil(m.Risk.StdDeviation),
			Skewness:       nanToNil(m.Risk.Skewness),
			ExcessKurtosis: nanToNil(m.Risk.ExcessKurtosis),
		},
	}
}

// nanToNil maps non-finite values to a null JSON value so short ranges
// still serialize.
func nanToNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func seriesToNil(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		out[i] = nanToNil(v)
	}
	return out
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(dateLayout)
	}
	return out
}
