package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"holocron/internal/middleware"
	"holocron/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const requestTimeout = 5 * time.Second

// requestContext derives the per-request deadline from the user context,
// which carries the request id and trace span.
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

// parseID extracts a route parameter as a positive uint. An id that is not a
// positive integer cannot name a row, so the failure is reported as NOT_FOUND
// for resource. On failure it writes the response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param, resource string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError(resource))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// favoriteRequest is the JSON body of the favorites endpoints.
type favoriteRequest struct {
	UserID any `json:"user_id"`
}

// parseUserID reads user_id from the JSON body. Only presence is checked: a
// missing, empty or malformed body, or a null user_id, yields nil, which is
// reported as a missing parameter. Any other value is coerced to an id;
// values that cannot name a row (negative, fractional, non-numeric) become 0,
// which resolves no user.
func parseUserID(c *fiber.Ctx) *uint {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var req favoriteRequest
	if err := dec.Decode(&req); err != nil || req.UserID == nil {
		return nil
	}
	id := coerceID(req.UserID)
	return &id
}

func coerceID(v any) uint {
	var raw string
	switch t := v.(type) {
	case json.Number:
		raw = t.String()
	case string:
		raw = strings.TrimSpace(t)
	default:
		return 0
	}
	if id, err := strconv.ParseUint(raw, 10, strconv.IntSize); err == nil {
		return uint(id)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f >= math.Exp2(strconv.IntSize) {
		return 0
	}
	return uint(f)
}

// mapServiceError translates service errors into HTTP status codes.
func mapServiceError(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return fiber.StatusGatewayTimeout
	}
	return models.StatusFor(err)
}

// respondServiceError writes err with the status mapped from its code.
// Server-side failures are logged here since their cause is not sent.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := mapServiceError(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, status, err)
}
