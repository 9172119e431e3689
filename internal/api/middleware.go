package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/HenrikSjoe/yh-kollen/internal/pkg/logger"
)

// RequestIDMiddleware tags every request with an id carried through the
// context, so log lines from the services can be correlated.
func (svc *APIService) RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id := ctx.Request().Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Response().Header().Set(echo.HeaderXRequestID, id)

		req := ctx.Request()
		ctx.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))

		return next(ctx)
	}
}

func (svc *APIService) RequestLogMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)

		req := ctx.Request()
		status := ctx.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}
		logger.Infof(req.Context(), "%s %s -> %d in %s", req.Method, req.RequestURI, status, time.Since(start))

		return err
	}
}
