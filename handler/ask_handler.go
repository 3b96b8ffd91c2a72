package handler

import (
	"log"
	"net/http"

	"github.com/dbarkol/telco-ai-solution-labs/service"
	"github.com/dbarkol/telco-ai-solution-labs/types"
	"github.com/gin-gonic/gin"
)

type AskHandler struct {
	rag *service.RAGService
}

func NewAskHandler(rag *service.RAGService) *AskHandler {
	return &AskHandler{rag: rag}
}

// HandleAsk answers one question. Per-query failures come back as an inline
// apology rather than crashing the caller's session.
func (h *AskHandler) HandleAsk(c *gin.Context) {
	var req types.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}

	resp, err := h.rag.Query(c.Request.Context(), req.Question)
	if err != nil {
		log.Printf("Query failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Sorry, I couldn't generate an answer right now. Please try again or rephrase your question.",
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   resp,
	})
}
