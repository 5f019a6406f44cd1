package controllers

import (
	"net/http"

	"github.com/etkecc/go-apm"
	echobasicauth "github.com/etkecc/go-echo-basic-auth"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/etkecc/langdetect/internal/metrics"
	"github.com/etkecc/langdetect/internal/model"
	"github.com/etkecc/langdetect/internal/version"
)

type configService interface {
	Get() *model.Config
}

type cacheService interface {
	Middleware() echo.MiddlewareFunc
	MiddlewareNoCache() echo.MiddlewareFunc
}

// ConfigureRouter configures echo router
func ConfigureRouter(
	e *echo.Echo,
	cfg configService,
	detectionSvc detectionService,
	languagesSvc languagesService,
	accountsSvc accountsService,
	blocklistSvc blocklistService,
	cacheSvc cacheService,
	classifierSvc classifierService,
) {
	configureRouter(e, cfg, blocklistSvc)

	noCache := cacheSvc.MiddlewareNoCache()
	e.GET("/metrics", echo.WrapHandler(&metrics.Handler{}), echobasicauth.NewMiddleware(&cfg.Get().Auth.Metrics), noCache)
	e.GET("/languages", languages(languagesSvc), cacheSvc.Middleware(), getRL(10))
	e.POST("/detect", detect(detectionSvc), noCache, getRL(100))
	e.POST("/detect/batch", detectBatch(detectionSvc), noCache, getRL(10))

	a := e.Group("-")
	a.Use(echobasicauth.NewMiddleware(&cfg.Get().Auth.Admin))
	a.Use(noCache)
	a.GET("/status", status(accountsSvc, blocklistSvc, classifierSvc))
	a.POST("/accounts", importAccounts(accountsSvc))
	a.GET("/accounts/:id", getAccount(accountsSvc))
	a.PUT("/accounts/:id/locale", setAccountLocale(accountsSvc))
	a.DELETE("/accounts/:id", removeAccount(accountsSvc))
	a.GET("/blocklist", listBlocked(blocklistSvc))
	a.PUT("/blocklist/:ip", block(blocklistSvc))
	a.DELETE("/blocklist/:ip", unblock(blocklistSvc))
}

func configureRouter(e *echo.Echo, cfg configService, blocklistSvc blocklistService) {
	e.Use(middleware.Recover())
	e.Use(apm.WithSentry())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(middleware.BodyLimit(cfg.Get().Detection.MaxBody))
	e.Use(middleware.Gzip())
	e.Use(withBlocklist(blocklistSvc))
	e.Use(withMContext())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, version.Server)
			return next(c)
		}
	})
	e.HideBanner = true
	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(true),
		echo.TrustPrivateNet(true),
	)
	e.Any("/_health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/robots.txt", func(c echo.Context) error {
		return c.String(http.StatusOK, "User-agent: *\nDisallow: /")
	})
}
