package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/router"
)

// Message - {"action": ..., "payload": ...}, the same envelope the websocket speaks.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type EventHandler interface {
	HandleEvent(ctx echo.Context) error
}

type eventHandler struct {
	logger     *slog.Logger
	dispatcher dispatcher
}

func NewEventHandler(logger *slog.Logger, dispatcher dispatcher) EventHandler {
	return &eventHandler{
		logger:     logger.With("component", "rest"),
		dispatcher: dispatcher,
	}
}

func (that *eventHandler) HandleEvent(ctx echo.Context) error {
	log := that.logger.With("method", "HandleEvent")

	var msg Message
	if err := json.NewDecoder(ctx.Request().Body).Decode(&msg); err != nil {
		log.Warn("failed to decode message", "error", err)
		return ctx.JSON(http.StatusBadRequest, router.Result{
			Status:    router.StatusError,
			ErrorKind: apperror.KindBadRequest,
			Error:     "invalid message format",
		})
	}

	event, err := router.DecodeEvent(msg.Action, msg.Payload)
	if err != nil {
		log.Warn("failed to decode event", "action", msg.Action, "error", err)
		return ctx.JSON(http.StatusBadRequest, router.Result{
			Status:    router.StatusError,
			ErrorKind: apperror.Kind(err),
			Error:     err.Error(),
		})
	}

	result := that.dispatcher.Dispatch(ctx.Request().Context(), event)

	return ctx.JSON(statusCode(result.ErrorKind), result)
}

func statusCode(kind string) int {
	switch kind {
	case "":
		return http.StatusOK
	case apperror.KindBadRequest, apperror.KindIllegalMove, apperror.KindUnsupportedSize:
		return http.StatusBadRequest
	case apperror.KindGameNotFound, apperror.KindPlayerNotFound:
		return http.StatusNotFound
	case apperror.KindNotAParticipant:
		return http.StatusForbidden
	case apperror.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusConflict
	}
}
