package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradejournal/internal/form"
	"tradejournal/internal/journal"
	"tradejournal/internal/service"
)

// TradeHandler exposes the journal's CRUD surface. Request bodies are
// editable drafts (numeric fields as strings, blank while typing); the form
// adapter coerces and validates before anything touches the store.
type TradeHandler struct {
	Feed    *service.TradeFeed
	Writer  *service.TradeWriter
	Adapter form.Adapter
	Logger  *zap.Logger
}

func (h *TradeHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/trades")
	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
	g.GET("/suggest-profit", h.suggestProfit)
}

func (h *TradeHandler) list(c *gin.Context) {
	records := h.Feed.Latest()
	Ok(c, records, map[string]any{"total": len(records)})
}

func (h *TradeHandler) create(c *gin.Context) {
	var draft form.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	fields, err := h.Adapter.ToPersisted(draft)
	if err != nil {
		writeMutationError(c, err)
		return
	}
	id, err := h.Writer.Add(c.Request.Context(), fields)
	if err != nil {
		writeMutationError(c, err)
		return
	}
	Created(c, gin.H{"id": id})
}

func (h *TradeHandler) update(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var draft form.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	fields, err := h.Adapter.ToPersisted(draft)
	if err != nil {
		writeMutationError(c, err)
		return
	}
	if err := h.Writer.Update(c.Request.Context(), id, fields); err != nil {
		writeMutationError(c, err)
		return
	}
	Ok(c, gin.H{"id": id}, nil)
}

func (h *TradeHandler) remove(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := h.Writer.Delete(c.Request.Context(), id); err != nil {
		writeMutationError(c, err)
		return
	}
	Ok(c, gin.H{"id": id}, nil)
}

func (h *TradeHandler) suggestProfit(c *gin.Context) {
	draft := form.Draft{
		Side:       c.Query("type"),
		EntryPrice: c.Query("entryPrice"),
		ExitPrice:  c.Query("exitPrice"),
		Quantity:   c.Query("quantity"),
	}
	Ok(c, gin.H{"profitLoss": h.Adapter.SuggestProfit(draft)}, nil)
}

// writeMutationError maps the journal error taxonomy onto HTTP statuses.
// Validation failures list each offending field so the form can highlight
// them; a stale id gets a 404 distinct from generic persistence failures.
func writeMutationError(c *gin.Context, err error) {
	var verr *journal.ValidationError
	if errors.As(err, &verr) {
		Error(c, http.StatusUnprocessableEntity, "validation failed", map[string]any{"fields": verr.Fields})
		return
	}
	var nf *journal.NotFoundError
	if errors.As(err, &nf) {
		Error(c, http.StatusNotFound, "trade was already changed or removed", map[string]any{"id": nf.ID})
		return
	}
	var pe *journal.PersistenceError
	if errors.As(err, &pe) {
		Error(c, http.StatusBadGateway, pe.Error(), nil)
		return
	}
	Error(c, http.StatusInternalServerError, err.Error(), nil)
}
