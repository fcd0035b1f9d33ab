package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"client-portal-backend/internal/identity"
	"client-portal-backend/internal/models"
	"client-portal-backend/internal/services"
)

type FilesHandler struct {
	resolver *identity.Resolver
	files    *services.FileService
}

func NewFilesHandler(resolver *identity.Resolver, files *services.FileService) *FilesHandler {
	return &FilesHandler{
		resolver: resolver,
		files:    files,
	}
}

// IssueUploadURL godoc
// @Summary     Issue a signed upload URL
// @Description Returns a time-limited upload target plus the storage handle to register afterwards.
// @Tags        files
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UploadURLRequest true "Upload target"
// @Success     200 {object} models.UploadURLResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /files/upload-url [post]
func (h *FilesHandler) IssueUploadURL(c *gin.Context) {
	caller, ok := requireCaller(c, h.resolver)
	if !ok {
		return
	}

	var req models.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	uploadURL, handle, err := h.files.IssueUploadURL(caller, projectID, req.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UploadURLResponse{
		UploadURL:     uploadURL,
		StorageHandle: handle,
	})
}

// RegisterUpload godoc
// @Summary     Register upload metadata
// @Description Records a file row after the blob or link is in place. Artifact uploads are admin-only and start pending.
// @Tags        files
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.RegisterFileRequest true "File metadata"
// @Success     200 {object} models.RegisterFileResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/files [post]
func (h *FilesHandler) RegisterUpload(c *gin.Context) {
	caller, ok := requireCaller(c, h.resolver)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	var req models.RegisterFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	file, err := h.files.RegisterUpload(caller, projectID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RegisterFileResponse{ID: file.ID.String()})
}

// ListFiles godoc
// @Summary     List project files
// @Description Returns a project's files with resolved retrieval URLs. A storage outage degrades single files to an empty URL instead of failing the call.
// @Tags        files
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       category query string false "Filter by category (general|artifact)"
// @Success     200 {object} models.FilesResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/files [get]
func (h *FilesHandler) ListFiles(c *gin.Context) {
	caller, ok := requireCaller(c, h.resolver)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	var category *models.FileCategory
	if raw := c.Query("category"); raw != "" {
		cat := models.FileCategory(raw)
		if !models.ValidFileCategory(cat) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file category"})
			return
		}
		category = &cat
	}

	files, err := h.files.List(caller, projectID, category)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.FileResponse, len(files))
	for i, file := range files {
		responses[i] = fileResponse(&file)
	}

	c.JSON(http.StatusOK, models.FilesResponse{Files: responses})
}

func (h *FilesHandler) UpdateStatus(c *gin.Context) {
	caller, ok := requireCaller(c, h.resolver)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file id"})
		return
	}

	var req models.UpdateFileStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	file, err := h.files.UpdateApprovalStatus(caller, fileID, req.Status, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fileResponse(&services.FileWithURL{File: *file}))
}

func (h *FilesHandler) DeleteFile(c *gin.Context) {
	caller, ok := requireCaller(c, h.resolver)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file id"})
		return
	}

	if err := h.files.Delete(caller, fileID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "file deleted successfully"})
}

func fileResponse(f *services.FileWithURL) models.FileResponse {
	resp := models.FileResponse{
		ID:         f.ID.String(),
		ProjectID:  f.ProjectID.String(),
		Name:       f.Name,
		URL:        f.URL,
		MimeType:   f.MimeType,
		Category:   f.Category,
		UploadedBy: f.UploadedBy.String(),
		UploadedAt: f.UploadedAt,
	}
	if f.SizeBytes.Valid {
		resp.SizeBytes = f.SizeBytes.Int64
	}
	if f.Status.Valid {
		resp.Status = f.Status.String
	}
	if f.ApprovedBy.Valid && f.ApprovedAt.Valid {
		resp.Approval = &models.ApprovalInfoResponse{
			ApprovedBy: f.ApprovedBy.UUID.String(),
			ApprovedAt: f.ApprovedAt.Time,
			Comment:    f.ApprovalComment.String,
		}
	}
	return resp
}
