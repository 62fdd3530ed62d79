package handler

import (
	"errors"
	"net/http"
	"strconv"

	"anoa.com/fittrack/internal/middleware"
	progressDto "anoa.com/fittrack/internal/modules/progress/dto"
	progress "anoa.com/fittrack/internal/modules/progress/service"
	"anoa.com/fittrack/pkg/apperror"
	"anoa.com/fittrack/pkg/response"
	"anoa.com/fittrack/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProgressHandler struct {
	progressService progress.ProgressService
}

func NewProgressHandler(progressService progress.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
	}
}

func (h *ProgressHandler) CreateProgress(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input progressDto.CreateProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.progressService.Create(c.Request.Context(), actor, c.Param("username"), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ProgressHandler) ListProgress(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	res, err := h.progressService.ListByUsername(c.Request.Context(), middleware.ActorFrom(c), username, page, perPage)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			response.ResponseNotFound(c)
		} else {
			response.ResponseError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid progress id"})
		return
	}

	log, err := h.progressService.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			response.ResponseNotFound(c)
		} else {
			response.ResponseError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, log)
}

func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid progress id"})
		return
	}

	var input progressDto.UpdateProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	updated, err := h.progressService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ProgressHandler) DeleteProgress(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid progress id"})
		return
	}

	if err := h.progressService.Delete(c.Request.Context(), actor, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			response.ResponseNotFound(c)
		} else {
			response.ResponseError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "progress log deleted"})
}
