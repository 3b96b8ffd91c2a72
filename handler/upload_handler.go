package handler

import (
	"log"
	"net/http"

	"github.com/dbarkol/telco-ai-solution-labs/service"
	"github.com/dbarkol/telco-ai-solution-labs/types"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	files *service.FileService
}

func NewUploadHandler(files *service.FileService) *UploadHandler {
	return &UploadHandler{files: files}
}

// HandleUpload accepts a PDF manual and indexes it synchronously.
func (h *UploadHandler) HandleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Missing file",
		})
		return
	}
	title := c.PostForm("title")

	summary, err := h.files.SaveAndIndex(c.Request.Context(), file, title)
	if err != nil {
		log.Printf("Upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Failed to index document: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data: types.UploadResponse{
			OriginalName: file.Filename,
			TotalChunks:  summary.TotalChunks,
		},
	})
}
