package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "FinScreen/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover turns a handler panic into a logged 500 with the standard error envelope.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				perr, ok := r.(error)
				if !ok {
					perr = fmt.Errorf("%v", r)
				}
				req := c.Request()
				l.Error("panic recovered",
					applogger.Error(perr),
					applogger.String("method", req.Method),
					applogger.String("path", req.URL.Path),
					applogger.String("request_id", req.Header.Get(echo.HeaderXRequestID)),
					applogger.String("stack", string(debug.Stack())),
				)
				if c.Response().Committed {
					return
				}
				err = c.JSON(http.StatusInternalServerError, map[string]interface{}{
					"status":  http.StatusInternalServerError,
					"message": http.StatusText(http.StatusInternalServerError),
					"data":    []map[string]string{{"code": "ERR_INTERNAL", "message": "internal error"}},
				})
			}()
			return next(c)
		}
	}
}
