package controller

import (
	"errors"

	"github.com/Shibo14/ielts-mock/internal/service"
	"github.com/Shibo14/ielts-mock/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	Service *service.TestService
}

func NewTestController(svc *service.TestService) *TestController {
	return &TestController{Service: svc}
}

// ListTests godoc
// @Summary Dashboard listing of available tests
// @Tags tests
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/tests [get]
func (c *TestController) ListTests(ctx *gin.Context) {
	tests, err := c.Service.ListTests()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// GetTest godoc
// @Summary Test details by slug
// @Tags tests
// @Produce json
// @Param slug path string true "test slug"
// @Success 200 {object} util.Response
// @Router /api/tests/{slug} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	test, err := c.Service.GetBySlug(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, test)
}
