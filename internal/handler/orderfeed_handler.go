package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hustlx/backend/internal/events"
	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/utils"
	"github.com/hustlx/backend/pkg/logger"
	"go.uber.org/zap"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = (feedPongWait * 9) / 10
)

var feedUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // add origin check in production
	},
}

// OrderFeedHandler streams order events to the homemaker they belong to.
// Sellers keep one socket open instead of polling the orders list.
type OrderFeedHandler struct {
	broker events.Broker
}

func NewOrderFeedHandler(broker events.Broker) *OrderFeedHandler {
	return &OrderFeedHandler{broker: broker}
}

func (h *OrderFeedHandler) HandleFeed(c *gin.Context) {
	claimsInterface, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	claims, ok := claimsInterface.(*utils.Claims)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid claims format"})
		return
	}
	if claims.Role != models.RoleHomemaker {
		c.JSON(http.StatusForbidden, gin.H{"error": "order feed is for homemakers"})
		return
	}

	conn, err := feedUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warn("Failed to upgrade order feed connection", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()

	eventCh, err := h.broker.Subscribe(ctx)
	if err != nil {
		logger.Log.Error("Failed to subscribe to order events", zap.Error(err))
		return
	}

	logger.Log.Info("Order feed connected",
		zap.String("user_id", claims.UserID.String()),
	)

	conn.SetReadDeadline(time.Now().Add(feedPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(feedPongWait))
		return nil
	})

	// Drain the read side so pings/pongs and close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case ev, ok := <-eventCh:
			if !ok {
				return
			}
			// Only the seller's own orders.
			if ev.HomemakerID != claims.UserID {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				logger.Log.Debug("Order feed write failed, closing",
					zap.String("user_id", claims.UserID.String()),
					zap.Error(err),
				)
				return
			}
		}
	}
}
