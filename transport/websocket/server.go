package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/router"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = time.Minute
	pingPeriod = pongWait * 9 / 10
)

type dispatcher interface {
	Dispatch(ctx context.Context, event router.Event) router.Result
}

type Server struct {
	logger     *slog.Logger
	dispatcher dispatcher
	upgrader   websocket.Upgrader
	srv        *http.Server

	connectionsMutex sync.RWMutex
	connections      map[string]*connection
}

func New(logger *slog.Logger, dispatcher dispatcher) *Server {
	return &Server{
		logger:     logger.With("component", "websocket"),
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[string]*connection),
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)

	return mux
}

// Start - starts WebSocket server and blocks until it stops.
func (that *Server) Start(port string) error {
	that.srv = &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if that.srv == nil {
		return nil
	}

	if err := that.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and serves it until the client leaves.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newConnection(conn)
	defer that.disconnect(client)

	go client.keepAlive()

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	if err = that.handleMessages(context.WithoutCancel(req.Context()), client); err != nil {
		log.Info("connection closed", "error", err)
	}
}

// handleMessages - reads envelopes until the connection fails.
func (that *Server) handleMessages(ctx context.Context, client *connection) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return err
		}

		var msg Message
		if err = json.Unmarshal(data, &msg); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = client.send("", errorResult(fmt.Errorf("%w: %w", apperror.ErrBadPayload, err))); err != nil {
				return err
			}
			continue
		}

		if err = that.processMessage(ctx, client, &msg); err != nil {
			log.Error("error processing message", "action", msg.Action, "error", err)
		}
	}
}

// processMessage - replies to the sender and pushes game state to the other seated player.
func (that *Server) processMessage(ctx context.Context, client *connection, msg *Message) error {
	event, err := router.DecodeEvent(msg.Action, msg.Payload)
	if err != nil {
		return client.send(msg.Action, errorResult(err))
	}

	if playerID := router.SenderID(event); playerID != "" {
		that.register(playerID, client)
	}

	result := that.dispatcher.Dispatch(ctx, event)

	if err = client.send(msg.Action, result); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	if result.IsGame() {
		that.broadcast(msg.Action, result, client)
	}

	return nil
}

func (that *Server) broadcast(action string, result router.Result, sender *connection) {
	log := that.logger.With("method", "broadcast", "gameID", result.GameID)

	for _, player := range result.Players {
		that.connectionsMutex.RLock()
		conn, ok := that.connections[player.ID]
		that.connectionsMutex.RUnlock()

		if !ok {
			log.Debug("connection not found for player", "playerID", player.ID)
			continue
		}

		if conn == sender {
			continue
		}

		if err := conn.send(action, result); err != nil {
			log.Warn("failed to notify player", "playerID", player.ID, "error", err)
		}
	}
}

// register - the latest connection of a player wins.
func (that *Server) register(playerID string, client *connection) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	that.connections[playerID] = client
}

func (that *Server) disconnect(client *connection) {
	that.connectionsMutex.Lock()
	for playerID, conn := range that.connections {
		if conn == client {
			delete(that.connections, playerID)
		}
	}
	that.connectionsMutex.Unlock()

	client.close()
}
