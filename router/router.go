package router

import (
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"agrismart/pkg/middleware"
)

type Controllers struct {
	Soil     interface{ Analyze(echo.Context) error }
	Dosage   interface{ Calculate(echo.Context) error }
	Growth   interface{ Crops(echo.Context) error; Status(echo.Context) error; Monitor(echo.Context) error }
	Advisory interface{ Recommend(echo.Context) error; Probe(echo.Context) error }
	Records  interface{ List(echo.Context) error; Get(echo.Context) error; Export(echo.Context) error }
	Contact  interface{ Submit(echo.Context) error }
	Health   interface{ Health(echo.Context) error }
}

// New mounts every route on e. staticDir is served at / when it exists.
func New(e *echo.Echo, h Controllers, staticDir string, log *zap.Logger) *echo.Echo {
	e.Use(echomw.Recover())
	e.Use(middleware.Session())
	e.Use(middleware.RequestLog(log))

	e.GET("/health", h.Health.Health)

	api := e.Group("/api")
	api.GET("/fertilizer-recommend", h.Advisory.Probe)
	api.POST("/fertilizer-recommend", h.Advisory.Recommend)

	api.POST("/analyze", h.Soil.Analyze)
	api.POST("/dosage", h.Dosage.Calculate)

	g := api.Group("/growth")
	g.GET("/crops", h.Growth.Crops)
	g.GET("/status", h.Growth.Status)
	g.GET("/monitor", h.Growth.Monitor)

	api.GET("/recommendations", h.Records.List)
	api.GET("/recommendations/export.xlsx", h.Records.Export)
	api.GET("/recommendations/:id", h.Records.Get)

	api.POST("/contact", h.Contact.Submit)

	if fi, err := os.Stat(staticDir); err == nil && fi.IsDir() {
		e.Static("/", staticDir)
	} else if staticDir != "" {
		log.Info("static dir not found, serving api only", zap.String("dir", staticDir))
	}
	return e
}
