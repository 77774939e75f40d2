// Package handler provides HTTP handlers for the forecast feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stock_analyzer/internal/api"
	"stock_analyzer/internal/feature/forecast/domain"
	"stock_analyzer/internal/feature/forecast/domain/entity"
	"stock_analyzer/internal/feature/forecast/transport/http/dto"
	pricesdomain "stock_analyzer/internal/feature/prices/domain"
)

const dateLayout = "2006-01-02"

// ForecastUsecase defines the forecast operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type ForecastUsecase interface {
	Forecast(ctx context.Context, symbol string, start, end time.Time, model string) (*entity.Forecast, error)
}

// ForecastHandler handles HTTP requests for price forecasts.
type ForecastHandler struct {
	uc ForecastUsecase
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(uc ForecastUsecase) *ForecastHandler {
	return &ForecastHandler{uc: uc}
}

// Get runs one or both forecast models on a symbol's close series.
//
// GET /forecast/:code?start=YYYY-MM-DD&end=YYYY-MM-DD&model=arima|lstm|both
func (h *ForecastHandler) Get(c *gin.Context) {
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
	model := c.DefaultQuery("model", entity.ModelBoth)

	f, err := h.uc.Forecast(c.Request.Context(), code, start, end, model)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownModel):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "model must be arima, lstm or both"})
		case errors.Is(err, pricesdomain.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "start date must be before end date"})
		case errors.Is(err, pricesdomain.ErrUnknownSymbol):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "symbol not found"})
		case errors.Is(err, domain.ErrInsufficientHistory):
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "not enough price history to forecast"})
		case errors.Is(err, pricesdomain.ErrNoData):
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "market data unavailable"})
		default:
			slog.Error("forecast failed", "symbol", code, "model", model, "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	out := dto.ForecastResponse{
		Symbol:  f.Symbol,
		Horizon: f.Horizon,
		Results: make([]dto.ModelResult, 0, len(f.Results)),
	}
	for _, res := range f.Results {
		points := make([]dto.ForecastPoint, len(res.Values))
		for i := range res.Values {
			points[i] = dto.ForecastPoint{
				Date:  res.Dates[i].Format(dateLayout),
				Value: res.Values[i],
			}
		}
		out.Results = append(out.Results, dto.ModelResult{
			Model:       res.Model,
			AccuracyPct: res.AccuracyPct,
			Points:      points,
		})
	}

	c.JSON(http.StatusOK, out)
}
