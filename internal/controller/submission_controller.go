package controller

import (
	"errors"
	"time"

	"github.com/Shibo14/ielts-mock/internal/service"
	"github.com/Shibo14/ielts-mock/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubmissionController struct {
	Service     *service.SubmissionService
	TestService *service.TestService
}

func NewSubmissionController(svc *service.SubmissionService, testSvc *service.TestService) *SubmissionController {
	return &SubmissionController{Service: svc, TestService: testSvc}
}

// Start godoc
// @Summary Start a timed attempt at a test
// @Tags submissions
// @Produce json
// @Param slug path string true "test slug"
// @Success 201 {object} util.Response
// @Router /api/tests/{slug}/start [post]
func (c *SubmissionController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	submission, err := c.Service.Start(claims.UserID, ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, submission)
}

// GetPaper godoc
// @Summary The exam paper for an open attempt
// @Description Questions without answer keys, plus the remaining time
// @Tags submissions
// @Produce json
// @Param id path string true "submission id"
// @Success 200 {object} util.Response
// @Router /api/submissions/{id}/paper [get]
func (c *SubmissionController) GetPaper(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Service.Result(claims, ctx.Param("id"))
	if err != nil {
		respondSubmissionError(ctx, err)
		return
	}
	submission := view.Submission

	slug, ok := submission.TestSlug()
	if !ok {
		// the test was deleted while the attempt was open
		util.NotFound(ctx)
		return
	}

	paper, err := c.TestService.GetPaper(ctx.Request.Context(), slug)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"submissionId":     submission.ID,
		"status":           submission.Status,
		"remainingSeconds": service.RemainingSeconds(submission, time.Now()),
		"paper":            paper,
	})
}

// SaveAnswer godoc
// @Summary Autosave one answer
// @Description Grades and upserts the response; the exam page calls
// this on every committed or debounced input change.
// @Tags submissions
// @Accept json
// @Produce json
// @Param body body service.SaveAnswerRequest true "answer"
// @Success 200 {object} util.Response
// @Router /api/answer [post]
func (c *SubmissionController) SaveAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SaveAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.SaveAnswer(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubmissionNotFound), errors.Is(err, util.ErrQuestionNotFound):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrSubmissionNotYours):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrAlreadyFinished):
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// Finish godoc
// @Summary Finish an attempt and score it
// @Tags submissions
// @Produce json
// @Param id path string true "submission id"
// @Success 200 {object} util.Response
// @Router /api/submissions/{id}/finish [post]
func (c *SubmissionController) Finish(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	submission, err := c.Service.Finish(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondSubmissionError(ctx, err)
		return
	}

	util.Success(ctx, submission)
}

// Result godoc
// @Summary Attempt result with band score
// @Tags submissions
// @Produce json
// @Param id path string true "submission id"
// @Success 200 {object} util.Response
// @Router /api/submissions/{id}/result [get]
func (c *SubmissionController) Result(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Service.Result(claims, ctx.Param("id"))
	if err != nil {
		respondSubmissionError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// ListMine godoc
// @Summary The current user's attempts
// @Tags submissions
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/submissions [get]
func (c *SubmissionController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	submissions, err := c.Service.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, submissions)
}

func respondSubmissionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSubmissionNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrSubmissionNotYours):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrAlreadyFinished):
		util.Error(ctx, 409, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
