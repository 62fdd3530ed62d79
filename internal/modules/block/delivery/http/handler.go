package handler

import (
	"net/http"

	block "anoa.com/fittrack/internal/modules/block/service"
	"anoa.com/fittrack/pkg/response"
	"github.com/gin-gonic/gin"
)

type BlockHandler struct {
	blockService block.BlockService
}

func NewBlockHandler(blockService block.BlockService) *BlockHandler {
	return &BlockHandler{
		blockService: blockService,
	}
}

func (h *BlockHandler) BlockUser(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	username := c.Param("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	blocked, err := h.blockService.Block(c.Request.Context(), userID, username)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, blocked)
}

func (h *BlockHandler) UnblockUser(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.blockService.Unblock(c.Request.Context(), userID, c.Param("username")); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unblocked"})
}

func (h *BlockHandler) ListBlocked(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	blocks, err := h.blockService.Blocked(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"blocked": blocks})
}
