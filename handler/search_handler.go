package handler

import (
	"net/http"

	"github.com/dbarkol/telco-ai-solution-labs/service"
	"github.com/dbarkol/telco-ai-solution-labs/types"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	rag *service.RAGService
}

func NewSearchHandler(rag *service.RAGService) *SearchHandler {
	return &SearchHandler{rag: rag}
}

// HandleSearch exposes raw hybrid retrieval without the generation step.
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}

	matches, err := h.rag.RetrieveTop(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Search failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   types.SearchResponse{Matches: matches},
	})
}
