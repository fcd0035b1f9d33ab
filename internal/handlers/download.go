package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"client-portal-backend/internal/models"
)

// DownloadHandler proxies a stored blob back to the browser with a download
// disposition. Stateless byte passthrough; the only logic here is filename
// massaging.
type DownloadHandler struct {
	client *http.Client
}

func NewDownloadHandler() *DownloadHandler {
	return &DownloadHandler{
		client: &http.Client{},
	}
}

// Canonical extensions for the MIME types the portal serves.
var mimeExtensions = map[string]string{
	"image/jpeg":       ".jpg",
	"image/png":        ".png",
	"image/gif":        ".gif",
	"image/webp":       ".webp",
	"application/pdf":  ".pdf",
	"text/plain":       ".txt",
	"application/zip":  ".zip",
	"application/json": ".json",
	"image/svg+xml":    ".svg",
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

// Download godoc
// @Summary     Download a file through the server
// @Description Streams the upstream resource with a Content-Disposition attachment header so the browser saves instead of rendering.
// @Tags        download
// @Produce     octet-stream
// @Param       filename path string true "Filename to save as"
// @Param       url query string true "Upstream resource URL"
// @Param       type query string false "Declared MIME type"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /download/{filename} [get]
func (h *DownloadHandler) Download(c *gin.Context) {
	rawURL := c.Query("url")
	filename := c.Param("filename")
	if rawURL == "" || filename == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "url and filename are required"})
		return
	}

	resp, err := h.client.Get(rawURL)
	if err != nil {
		log.Printf("Error: failed to fetch %s: %v", rawURL, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch file"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Error: upstream returned %d for %s", resp.StatusCode, rawURL)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch file"})
		return
	}

	contentType := c.Query("type")
	if contentType == "" {
		contentType = resp.Header.Get("Content-Type")
	}
	filename = withCanonicalExtension(filename, contentType)

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", contentDisposition(filename))
	if length := resp.Header.Get("Content-Length"); length != "" {
		c.Header("Content-Length", length)
	}

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		log.Printf("Warning: streaming %s aborted: %v", filename, err)
	}
}

// withCanonicalExtension appends the declared MIME type's extension when the
// filename does not already end with it.
func withCanonicalExtension(filename, contentType string) string {
	mime := contentType
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	ext, ok := mimeExtensions[strings.TrimSpace(mime)]
	if !ok {
		return filename
	}
	if strings.HasSuffix(strings.ToLower(filename), ext) {
		return filename
	}
	if ext == ".jpg" && strings.HasSuffix(strings.ToLower(filename), ".jpeg") {
		return filename
	}
	return filename + ext
}

// contentDisposition builds an RFC 6266 attachment header carrying both the
// legacy ASCII filename and the RFC 5987 encoded one.
func contentDisposition(filename string) string {
	ascii := unsafeFilenameChars.ReplaceAllString(filename, "_")
	encoded := url.PathEscape(filename)
	// PathEscape leaves these alone but RFC 5987 value chars exclude them.
	replacer := strings.NewReplacer(
		"'", "%27",
		"(", "%28",
		")", "%29",
		"*", "%2A",
	)
	encoded = replacer.Replace(encoded)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, ascii, encoded)
}
