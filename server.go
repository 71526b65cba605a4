package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzip"

	"monkey-rumble/server/funding"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// setupRouter wires the HTTP surface. Everything here is a thin shim over
// the hub; no handler touches the world directly.
func setupRouter(hub *Hub) *gin.Engine {
	r := gin.Default()

	r.GET("/ws", handleWebsocket(hub))
	r.GET("/state", handleState(hub))
	r.GET("/state.gz", handleStateGzip(hub))
	r.GET("/diagnostics", handleDiagnostics(hub))
	r.POST("/reset", handleReset(hub))
	r.POST("/fund", handleFund(hub))
	r.POST("/combat", handleCombat(hub))

	return r
}

func handleWebsocket(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("WS upgrade error:", err)
			return
		}

		id, snapshot := hub.Subscribe(conn)
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(snapshot); err != nil {
			hub.Unsubscribe(id)
			return
		}

		// The protocol is one-way; reads only detect disconnects.
		go func() {
			defer hub.Unsubscribe(id)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

func handleState(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, hub.StateMessage())
	}
}

func handleStateGzip(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.Header("Content-Encoding", "gzip")
		zw := gzip.NewWriter(c.Writer)
		defer zw.Close()
		if err := writeJSON(zw, hub.StateMessage()); err != nil {
			log.Printf("gzip state write: %v", err)
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

func handleDiagnostics(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, hub.Diagnostics())
	}
}

func handleReset(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.Reset()
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// handleFund injects a funding event by hand, mostly for local testing and
// demos. Events go through the same queue as polled ones.
func handleFund(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req fundRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
			return
		}
		if req.Wallet == "" && req.TeamID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "wallet or teamId is required"})
			return
		}
		key := req.IdempotencyKey
		if key == "" {
			key = uuid.NewString()
		}
		hub.EnqueueFunding(funding.Event{
			Wallet:         req.Wallet,
			Amount:         req.Amount,
			IsWithdrawal:   req.IsWithdrawal,
			TeamID:         req.TeamID,
			TimestampMs:    time.Now().UnixMilli(),
			IdempotencyKey: key,
		})
		c.JSON(http.StatusAccepted, gin.H{"idempotencyKey": key})
	}
}

func handleCombat(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req combatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		hub.SetCombatEnabled(req.Enabled)
		c.JSON(http.StatusOK, gin.H{"combatEnabled": hub.CombatEnabled()})
	}
}
