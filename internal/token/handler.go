package token

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Response struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: service,
		logger:  logger.With("component", "token-handler"),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/token", h.handleToken)
}

func (h *Handler) handleToken(c echo.Context) error {
	identity := c.QueryParam("identity")
	room := c.QueryParam("room")

	if h.service.URL() == "" {
		return sendJSON(c, http.StatusInternalServerError, map[string]string{
			"error": "LIVEKIT_URL must be set",
		}, false)
	}

	jwt, err := h.service.Mint(identity, room)
	if err != nil {
		h.logger.Warn("token mint failed", "error", err)
		return sendJSON(c, http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		}, false)
	}

	return sendJSON(c, http.StatusOK, Response{
		Token: jwt,
		URL:   h.service.URL(),
	}, true)
}

func sendJSON(c echo.Context, status int, v any, cors bool) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if cors {
		c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
	}
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(len(body)))
	return c.Blob(status, echo.MIMEApplicationJSON, body)
}
