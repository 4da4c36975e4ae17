package middleware

import (
	"strconv"

	"FinScreen/internal/service/ratelimit"
	xhttp "FinScreen/pkg/http"
	"FinScreen/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RateLimit rejects clients that exceed their per-IP budget with 429.
// Paths listed in skip are never limited.
func RateLimit(l *ratelimit.Limiter, log *logger.Logger, skip ...string) echo.MiddlewareFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := skipped[c.Request().URL.Path]; ok {
				return next(c)
			}
			ip := c.RealIP()
			if l.Allow(ip) {
				return next(c)
			}

			retry := l.RetryAfter()
			if log != nil {
				log.Warn("rate limit exceeded",
					logger.String("ip", ip),
					logger.String("path", c.Request().URL.Path),
				)
			}
			c.Response().Header().Set("Retry-After", strconv.Itoa(retry))
			return xhttp.AppErrorResponse(c,
				xhttp.TooManyRequestsError("rate limit exceeded, retry after "+strconv.Itoa(retry)+"s").
					WithParam("retry_after", retry))
		}
	}
}
