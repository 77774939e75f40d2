// Package handler provides HTTP handlers for the prices feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stock_analyzer/internal/api"
	"stock_analyzer/internal/feature/prices/domain"
	"stock_analyzer/internal/feature/prices/domain/entity"
	"stock_analyzer/internal/feature/prices/transport/http/dto"
)

const dateLayout = "2006-01-02"

// PricesUsecase defines the price operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PricesUsecase interface {
	GetHistory(ctx context.Context, symbol string, start, end time.Time) ([]entity.Bar, error)
}

// PricesHandler handles HTTP requests for daily price history.
type PricesHandler struct {
	uc PricesUsecase
}

// NewPricesHandler creates a new PricesHandler.
func NewPricesHandler(uc PricesUsecase) *PricesHandler {
	return &PricesHandler{uc: uc}
}

// GetHistory returns the daily bars for one symbol over a date range.
//
// GET /prices/:code?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *PricesHandler) GetHistory(c *gin.Context) {
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

	bars, err := h.uc.GetHistory(c.Request.Context(), code, start, end)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "start date must be before end date"})
		case errors.Is(err, domain.ErrUnknownSymbol):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "symbol not found"})
		case errors.Is(err, domain.ErrNoData):
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "market data unavailable"})
		default:
			slog.Error("price history fetch failed", "symbol", code, "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	out := dto.HistoryResponse{
		Symbol: code,
		Bars:   make([]dto.BarResponse, len(bars)),
	}
	for i, b := range bars {
		out.Bars[i] = dto.BarResponse{
			Date:   b.Date.Format(dateLayout),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}

	c.JSON(http.StatusOK, out)
}
