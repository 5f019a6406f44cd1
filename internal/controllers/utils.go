package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/etkecc/go-apm"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/etkecc/langdetect/internal/model"
	"github.com/etkecc/langdetect/internal/model/mcontext"
)

var (
	rls        = map[rate.Limit]echo.MiddlewareFunc{}
	errBadBody = errors.New("cannot parse request body")
)

type blocklistService interface {
	Has(ip string) bool
	Add(ip string)
	Remove(ip string)
	Slice() []string
}

// errorResponse sends error as JSON
func errorResponse(c echo.Context, code int, err error) error {
	return c.JSON(code, &model.ErrorResponse{Message: err.Error()})
}

// bindJSON reads request body into v
func bindJSON(c echo.Context, v any) error {
	defer c.Request().Body.Close()
	datab, err := io.ReadAll(c.Request().Body)
	if err != nil {
		apm.Log(c.Request().Context()).Warn().Err(err).Msg("cannot read request body")
		return errBadBody
	}
	if err := json.Unmarshal(datab, v); err != nil {
		apm.Log(c.Request().Context()).Warn().Err(err).Msg("cannot unmarshal request body")
		return errBadBody
	}
	return nil
}

func getRL(limit rate.Limit) echo.MiddlewareFunc {
	rl, ok := rls[limit]
	if ok {
		return rl
	}
	cfg := middleware.DefaultRateLimiterConfig
	cfg.Skipper = func(c echo.Context) bool {
		return c.Request().Method == http.MethodOptions
	}
	cfg.ErrorHandler = func(c echo.Context, err error) error {
		if err == nil {
			err = errors.New("error while extracting identifier") // default message from middleware
		}
		return errorResponse(c, http.StatusForbidden, err)
	}
	cfg.DenyHandler = func(c echo.Context, _ string, _ error) error {
		c.Response().Header().Set(echo.HeaderRetryAfter, "10")
		return errorResponse(c, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
	}
	cfg.Store = middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     int(limit),
		ExpiresIn: 5 * time.Minute,
	})
	rls[limit] = middleware.RateLimiterWithConfig(cfg)
	return rls[limit]
}

func withBlocklist(blocklist blocklistService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if blocklist.Has(c.RealIP()) {
				return errorResponse(c, http.StatusForbidden, errors.New("forbidden"))
			}
			return next(c)
		}
	}
}

// withMContext stores request metadata in the request context
func withMContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			ctx = mcontext.WithIP(ctx, c.RealIP())
			ctx = mcontext.WithRequestID(ctx, c.Response().Header().Get(echo.HeaderXRequestID))
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// detectionLog writes detection outcome with request metadata
func detectionLog(ctx context.Context, detection *model.Detection) {
	log := apm.Log(ctx).Debug().Str("ip", mcontext.GetIP(ctx)).Str("request_id", mcontext.GetRequestID(ctx))
	if detection == nil {
		log.Msg("no content to detect")
		return
	}
	log.Str("language", detection.Language).Str("source", string(detection.Source)).Msg("detected")
}
