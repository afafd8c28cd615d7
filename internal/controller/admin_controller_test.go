package controller

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Shibo14/ielts-mock/internal/util"

	"github.com/gin-gonic/gin"
)

func TestCheckAudioUpload(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		size    int64
		wantErr bool
	}{
		{"mp3 accepted", "section1.mp3", 4 << 20, false},
		{"uppercase extension accepted", "SECTION1.MP3", 4 << 20, false},
		{"wav accepted", "recording.wav", 4 << 20, false},
		{"oversize rejected", "section1.mp3", util.MaxAudioSizeBytes + 1, true},
		{"non-audio extension rejected", "notes.txt", 1 << 10, true},
		{"missing extension rejected", "recording", 1 << 10, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkAudioUpload(tc.file, tc.size)
			if (err != nil) != tc.wantErr {
				t.Errorf("checkAudioUpload(%q, %d) = %v, wantErr %v", tc.file, tc.size, err, tc.wantErr)
			}
		})
	}
}

// A rejected upload must fail the request before the test row is
// written. The controller carries no services here, so reaching the
// create path would panic instead of responding 400.
func TestCreateTestRejectsBadAudioBeforeCreating(t *testing.T) {
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	if err := form.WriteField("title", "Listening practice"); err != nil {
		t.Fatal(err)
	}
	part, err := form.CreateFormFile("audio", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("not audio")); err != nil {
		t.Fatal(err)
	}
	form.Close()

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/tests", body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	ctx.Request = req

	c := &AdminController{}
	c.CreateTest(ctx)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
