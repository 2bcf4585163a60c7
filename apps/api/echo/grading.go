package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/grading"
)

type gradingApi struct {
	svc      grading.Service
	validate *validator.Validate
}

func registerGradingAPI(g *echo.Group, svc grading.Service, validate *validator.Validate) {
	api := gradingApi{
		svc:      svc,
		validate: validate,
	}

	g.POST("/grades/normalize", api.normalize)

	sg := g.Group("/course-sections/:id")
	sg.GET("/grades", api.queryGrades)
	sg.PUT("/grades", api.saveGrades)
	sg.POST("/attendance", api.recordAttendance)
}

// Handlers

// normalize previews the normalized rows; nothing is saved.
func (api *gradingApi) normalize(ctx echo.Context) error {
	var data grading.NormalizeRows
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NormalizeRows")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Normalize(data.Rows))
}

func (api *gradingApi) queryGrades(ctx echo.Context) error {
	var ord Ordering
	ord.Bind(ctx)

	records, err := api.svc.SectionGrades(ctx.Request().Context(), ctx.Param("id"), ord.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying section grades")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *gradingApi) saveGrades(ctx echo.Context) error {
	var data grading.SaveGrades
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SaveGrades")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	records, err := api.svc.SaveGrades(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "saving grades")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *gradingApi) recordAttendance(ctx echo.Context) error {
	var data grading.NewAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAttendance")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	records, err := api.svc.RecordAttendance(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "recording attendance")
	}
	return ctx.JSON(http.StatusCreated, records)
}
