package services

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// Cache service sets HTTP cache headers.
// Responses of the cacheable endpoints change only on restart, so the startup time is used as Last-Modified
type Cache struct {
	cfg       ConfigService
	startedAt string
}

// NewCache service
func NewCache(cfg ConfigService) *Cache {
	return &Cache{
		cfg:       cfg,
		startedAt: time.Now().UTC().Format(http.TimeFormat),
	}
}

func (cache *Cache) clearHeaders(c echo.Context) {
	c.Response().Header().Del("Cache-Control")
	c.Response().Header().Del("Last-Modified")
}

// Middleware returns cache middleware for endpoints with static responses
func (cache *Cache) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			if c.Request().Header.Get("if-modified-since") == cache.startedAt {
				return c.NoContent(http.StatusNotModified)
			}

			cache.clearHeaders(c)
			maxAge := strconv.Itoa(cache.cfg.Get().Cache.MaxAge)
			c.Response().Header().Set("Cache-Control", "max-age="+maxAge+", public")
			c.Response().Header().Set("Last-Modified", cache.startedAt)
			return next(c)
		}
	}
}

// MiddlewareNoCache returns middleware that forbids caching
func (cache *Cache) MiddlewareNoCache() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cache.clearHeaders(c)
			c.Response().Header().Set("Cache-Control", "no-cache")
			return next(c)
		}
	}
}
