package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Shibo14/ielts-mock/internal/model"
	"github.com/Shibo14/ielts-mock/internal/service"
	"github.com/Shibo14/ielts-mock/internal/util"
	"github.com/Shibo14/ielts-mock/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var allowedAudioExts = map[string]bool{
	".mp3": true, ".m4a": true, ".wav": true, ".ogg": true, ".aac": true,
}

type AdminController struct {
	Tests       *service.TestService
	Submissions *service.SubmissionService
	Storage     *service.StorageService
}

func NewAdminController(tests *service.TestService, submissions *service.SubmissionService, storage *service.StorageService) *AdminController {
	return &AdminController{Tests: tests, Submissions: submissions, Storage: storage}
}

// CreateTest godoc
// @Summary Create a test, optionally with a listening recording
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "test title"
// @Param section formData string false "listening/reading/writing/speaking"
// @Param level formData string false "academic/general"
// @Param duration formData int false "duration in minutes"
// @Param audio formData file false "listening audio"
// @Success 201 {object} util.Response
// @Router /api/admin/tests [post]
func (c *AdminController) CreateTest(ctx *gin.Context) {
	var req service.CreateTestRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if claims := util.GetUserFromContext(ctx); claims != nil {
		req.CenterID = claims.CenterID
	}

	file, fileErr := ctx.FormFile("audio")
	hasAudio := fileErr == nil
	var audioMime string
	if hasAudio {
		// empty section defaults to listening downstream
		if req.Section != "" && req.Section != model.SectionListening {
			util.BadRequest(ctx, util.ErrAudioOnlyListening.Error())
			return
		}
		// reject a bad upload before any row is written
		audioMime, fileErr = c.validateAudio(ctx, file)
		if fileErr != nil {
			return
		}
	}

	test, err := c.Tests.CreateTest(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if hasAudio {
		if err := c.storeAudio(ctx, test, file, audioMime); err != nil {
			return
		}
	}

	util.Created(ctx, test)
}

// UploadAudio godoc
// @Summary Attach a listening recording to an existing test
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param slug path string true "test slug"
// @Param audio formData file true "listening audio"
// @Success 200 {object} util.Response
// @Router /api/admin/tests/{slug}/audio [post]
func (c *AdminController) UploadAudio(ctx *gin.Context) {
	test, err := c.Tests.GetBySlug(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if test.Section != model.SectionListening {
		util.BadRequest(ctx, util.ErrAudioOnlyListening.Error())
		return
	}

	file, err := ctx.FormFile("audio")
	if err != nil {
		util.BadRequest(ctx, "audio file is required")
		return
	}
	mimeType, err := c.validateAudio(ctx, file)
	if err != nil {
		return
	}
	if err := c.storeAudio(ctx, test, file, mimeType); err != nil {
		return
	}

	util.Success(ctx, test)
}

// checkAudioUpload rejects uploads by size and extension before
// anything touches the database or storage.
func checkAudioUpload(name string, size int64) error {
	if size > util.MaxAudioSizeBytes {
		return errors.New("audio file too large")
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedAudioExts[ext] {
		return errors.New("unsupported audio format: " + ext)
	}
	return nil
}

// validateAudio vets the upload and reports its MIME type. It writes
// the error response itself; a non-nil return only tells the caller to
// stop.
func (c *AdminController) validateAudio(ctx *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := checkAudioUpload(file.Filename, file.Size); err != nil {
		util.BadRequest(ctx, err.Error())
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return "", err
	}
	defer src.Close()

	// MP3 without ID3 tags sniffs as octet-stream, hence the
	// extension gate above.
	mimeType, err := util.ValidateMimeType(src, []string{"audio/", "application/octet-stream", "video/mp4"})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return "", err
	}
	return mimeType, nil
}

// storeAudio uploads a validated recording and records it on the test.
// Error responses are written here, like validateAudio.
func (c *AdminController) storeAudio(ctx *gin.Context, test *model.Test, file *multipart.FileHeader, mimeType string) error {
	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := fmt.Sprintf("%s-%s%s", test.Slug, uuid.New().String()[:8], ext)
	if _, err := c.Storage.Upload(ctx.Request.Context(), filename, src, file.Size, mimeType); err != nil {
		util.LogInternalError(ctx, err)
		return err
	}

	var duration float64
	if localPath := c.Storage.LocalPath(filename); localPath != "" {
		if info, err := util.GetAudioInfo(localPath); err != nil {
			logger.Log.Warn("audio probe failed", zap.String("file", filename), zap.Error(err))
		} else {
			duration = info.Duration
		}
	}

	if err := c.Tests.AttachAudio(test, filename, duration); err != nil {
		util.LogInternalError(ctx, err)
		return err
	}
	return nil
}

// ImportQuestions godoc
// @Summary Import a question bank into a test
// @Tags admin
// @Accept json
// @Produce json
// @Param slug path string true "test slug"
// @Success 200 {object} util.Response
// @Router /api/admin/tests/{slug}/questions [post]
func (c *AdminController) ImportQuestions(ctx *gin.Context) {
	test, err := c.Tests.GetBySlug(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var items []service.ImportQuestion
	if file, err := ctx.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		defer src.Close()
		if err := json.NewDecoder(src).Decode(&items); err != nil {
			util.BadRequest(ctx, util.ErrImportInvalidFormat.Error())
			return
		}
	} else if err := ctx.ShouldBindJSON(&items); err != nil {
		util.BadRequest(ctx, util.ErrImportInvalidFormat.Error())
		return
	}

	count, err := c.Tests.ImportQuestions(test.ID, items)
	if err != nil {
		if errors.Is(err, util.ErrImportInvalidFormat) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"imported": count})
}

// ListResults godoc
// @Summary Paginated results across all students
// @Tags admin
// @Produce json
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/results [get]
func (c *AdminController) ListResults(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	rows, total, err := c.Submissions.AdminList(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  rows,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
