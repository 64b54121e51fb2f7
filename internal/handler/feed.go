package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"tradejournal/internal/journal"
	"tradejournal/internal/service"
)

// FeedHandler streams the live journal over a websocket: the full sanitized
// list on connect and again after every store change, mirroring the store's
// full-snapshot delivery model.
type FeedHandler struct {
	Feed         *service.TradeFeed
	Logger       *zap.Logger
	WriteTimeout time.Duration
}

func (h *FeedHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/feed", h.stream)
}

func (h *FeedHandler) stream(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	ctx := c.Request.Context()

	// Updates arrive on the feed's goroutine; a slow client drops
	// intermediate snapshots rather than blocking the feed. Full snapshots
	// make that safe: the next delivery carries complete state.
	updates := make(chan []journal.TradeRecord, 1)
	stop := h.Feed.Start(func(records []journal.TradeRecord) {
		for {
			select {
			case updates <- records:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	})
	defer stop()

	timeout := h.WriteTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case records := <-updates:
			payload, err := json.Marshal(records)
			if err != nil {
				if h.Logger != nil {
					h.Logger.Warn("feed encode failed", zap.Error(err))
				}
				continue
			}
			wctx, cancel := context.WithTimeout(ctx, timeout)
			err = conn.Write(wctx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
