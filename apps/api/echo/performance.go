package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/performance"
)

type performanceApi struct {
	svc performance.Service
}

func registerPerformanceAPI(g *echo.Group, svc performance.Service) {
	api := performanceApi{svc: svc}

	tg := g.Group("/teachers/:id")
	tg.GET("/stats", api.stats)
	tg.POST("/stats/report", api.mailReport)
}

// Handlers

func (api *performanceApi) stats(ctx echo.Context) error {
	snap, err := api.svc.TeacherStats(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "computing teacher stats")
	}
	return ctx.JSON(http.StatusOK, snap)
}

func (api *performanceApi) mailReport(ctx echo.Context) error {
	if err := api.svc.MailReport(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "mailing teacher report")
	}
	return ctx.NoContent(http.StatusAccepted)
}
