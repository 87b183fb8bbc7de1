package controller

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/dto"
	"github.com/dukkanlabs/dukkan-erp/pkg/backup"
	"github.com/dukkanlabs/dukkan-erp/pkg/logger"
	"github.com/gin-gonic/gin"
)

// maxBackupUploadSize bounds restore uploads to 64 MiB
const maxBackupUploadSize = 64 << 20

// BackupController handles dataset export and restore requests
type BackupController struct {
	backupService *backup.Service
	logger        logger.Logger
}

// NewBackupController creates a new BackupController
func NewBackupController(backupService *backup.Service, logger logger.Logger) *BackupController {
	return &BackupController{
		backupService: backupService,
		logger:        logger,
	}
}

// Export streams the whole dataset as a zip archive
// @Summary Export backup
// @Tags backup
// @Produce application/zip
// @Param Authorization header string true "Bearer token"
// @Success 200 {file} file
// @Failure 500 {object} dto.ErrorResponse
// @Router /backup/export [get]
func (c *BackupController) Export(ctx *gin.Context) {
	name := fmt.Sprintf("backup-%s.zip", time.Now().Format("20060102-150405"))

	ctx.Header("Content-Type", "application/zip")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	if err := c.backupService.Export(ctx.Writer); err != nil {
		c.logger.Error("failed to export backup", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to export backup", err.Error()))
		return
	}
}

// Import replaces the whole dataset with an uploaded zip archive. The
// payload is validated in full before anything is replaced.
// @Summary Import backup
// @Tags backup
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param file formData file true "Backup archive"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /backup/import [post]
func (c *BackupController) Import(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "missing backup file", err.Error()))
		return
	}
	if fileHeader.Size > maxBackupUploadSize {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "backup file too large", ""))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "failed to open backup file", err.Error()))
		return
	}
	defer f.Close()

	payload, err := io.ReadAll(f)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "failed to read backup file", err.Error()))
		return
	}

	if err := c.backupService.Import(bytes.NewReader(payload), int64(len(payload))); err != nil {
		if errors.Is(err, backup.ErrUnsupportedSchema) || errors.Is(err, backup.ErrMissingDataFile) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid backup archive", err.Error()))
			return
		}
		c.logger.Error("failed to import backup", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to import backup", err.Error()))
		return
	}

	c.logger.Info("backup imported", "size", len(payload))
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("backup imported", nil))
}
