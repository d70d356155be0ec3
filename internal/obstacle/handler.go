package obstacle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/navassist/nav-backend/internal/vision"
)

const DefaultMaxFrameBytes = 500_000

// FrameAnalyzer produces a Result for a frame. Implementations never fail;
// failure modes are encoded in the Result itself.
type FrameAnalyzer interface {
	Analyze(ctx context.Context, image []byte) Result
}

// FrameArchive is the optional frame store hook. A nil archive disables it.
type FrameArchive interface {
	StoreFrame(ctx context.Context, frame *vision.Frame) error
}

type Handler struct {
	analyzer FrameAnalyzer
	archive  FrameArchive
	maxBytes int64
	logger   *slog.Logger
}

func NewHandler(analyzer FrameAnalyzer, archive FrameArchive, maxBytes int64, logger *slog.Logger) *Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFrameBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		analyzer: analyzer,
		archive:  archive,
		maxBytes: maxBytes,
		logger:   logger.With("component", "obstacle-handler"),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/obstacle-frame", h.handleFrame)
}

func (h *Handler) handleFrame(c echo.Context) error {
	length := c.Request().ContentLength
	if length <= 0 || length > h.maxBytes {
		return h.sendJSON(c, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("Invalid Content-Length (JPEG body, max %d bytes)", h.maxBytes),
		})
	}

	// Exactly the declared number of bytes; the cap above bounds the
	// allocation. A short or failed read still produces a well-formed
	// result so the client reads it as "no obstacle".
	image := make([]byte, length)
	if _, err := io.ReadFull(c.Request().Body, image); err != nil {
		return h.sendJSON(c, http.StatusOK, errorResult(err.Error()))
	}

	ctx := c.Request().Context()

	if h.archive != nil {
		frame := &vision.Frame{
			SessionID: sessionID(c),
			Timestamp: time.Now().UnixMilli(),
			Data:      image,
		}
		if err := h.archive.StoreFrame(ctx, frame); err != nil {
			h.logger.Debug("frame archive write failed", "error", err)
		}
	}

	return h.sendJSON(c, http.StatusOK, h.analyzer.Analyze(ctx, image))
}

func sessionID(c echo.Context) string {
	if id := c.Request().Header.Get("X-Session-ID"); id != "" {
		return id
	}
	return "default"
}

// sendJSON marshals up front so the response carries an exact Content-Length,
// and always sets the permissive CORS header regardless of request origin.
func (h *Handler) sendJSON(c echo.Context, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(len(body)))
	return c.Blob(status, echo.MIMEApplicationJSON, body)
}
