// Package handler provides HTTP handlers for the symbols feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_analyzer/internal/api"
	"stock_analyzer/internal/feature/symbols/domain/entity"
	"stock_analyzer/internal/feature/symbols/transport/http/dto"
	"stock_analyzer/internal/feature/symbols/usecase"
)

// SymbolUsecase defines the symbol operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
	GetProfile(ctx context.Context, code string) (*entity.Symbol, error)
}

// SymbolHandler handles HTTP requests for the symbol catalog.
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler creates a new SymbolHandler.
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List returns the active symbol catalog.
//
// GET /symbols
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{Code: s.Code, Name: s.Name})
	}
	c.JSON(http.StatusOK, out)
}

// Profile returns the company profile for one ticker.
//
// GET /symbols/:code
func (h *SymbolHandler) Profile(c *gin.Context) {
	code := c.Param("code")

	s, err := h.uc.GetProfile(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, usecase.ErrSymbolNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "symbol not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.SymbolProfile{
		Code:             s.Code,
		Name:             s.Name,
		Founder:          s.Founder,
		History:          s.History,
		PresentCondition: s.PresentCondition,
	})
}
