package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/router"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response - the reply envelope; Payload is the dispatch result.
type Response struct {
	Action  string        `json:"action"`
	Payload router.Result `json:"payload"`
}

// connection - gorilla allows one concurrent writer, so sends are serialized.
type connection struct {
	conn *websocket.Conn
	mu   sync.Mutex
	done chan struct{}
}

func newConnection(conn *websocket.Conn) *connection {
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	return &connection{
		conn: conn,
		done: make(chan struct{}),
	}
}

// keepAlive - pings until close, so idle players are not cut off by the read deadline.
func (that *connection) keepAlive() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-that.done:
			return
		case <-ticker.C:
			that.mu.Lock()
			err := that.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			that.mu.Unlock()

			if err != nil {
				return
			}
		}
	}
}

func (that *connection) send(action string, result router.Result) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.conn.WriteJSON(Response{Action: action, Payload: result}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *connection) close() {
	close(that.done)

	that.mu.Lock()
	defer that.mu.Unlock()

	_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = that.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = that.conn.Close()
}

func errorResult(err error) router.Result {
	return router.Result{
		Status:    router.StatusError,
		ErrorKind: apperror.Kind(err),
		Error:     err.Error(),
	}
}
