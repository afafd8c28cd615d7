package controller

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Shibo14/ielts-mock/internal/service"
	"github.com/Shibo14/ielts-mock/internal/util"

	"github.com/gin-gonic/gin"
)

type AudioController struct {
	Storage *service.StorageService
}

func NewAudioController(storage *service.StorageService) *AudioController {
	return &AudioController{Storage: storage}
}

// Serve godoc
// @Summary Stream a listening recording
// @Tags audio
// @Produce audio/mpeg
// @Param filename path string true "stored filename"
// @Success 200
// @Router /api/audio/{filename} [get]
func (c *AudioController) Serve(ctx *gin.Context) {
	filename := filepath.Base(ctx.Param("filename"))
	if filename == "." || filename == "/" || strings.Contains(filename, "..") {
		util.BadRequest(ctx, "invalid filename")
		return
	}

	if localPath := c.Storage.LocalPath(filename); localPath != "" {
		// http.ServeFile handles Range requests, which the audio
		// player relies on for seeking.
		http.ServeFile(ctx.Writer, ctx.Request, localPath)
		return
	}

	// Remote providers serve their own (possibly signed) URLs.
	url := c.Storage.GetURL(filename)
	if url == "" {
		util.NotFound(ctx)
		return
	}
	ctx.Redirect(http.StatusFound, url)
}
