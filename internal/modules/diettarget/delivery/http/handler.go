package handler

import (
	"errors"
	"net/http"

	"anoa.com/fittrack/internal/middleware"
	dietDto "anoa.com/fittrack/internal/modules/diettarget/dto"
	diettarget "anoa.com/fittrack/internal/modules/diettarget/service"
	"anoa.com/fittrack/pkg/apperror"
	"anoa.com/fittrack/pkg/response"
	"anoa.com/fittrack/pkg/validator"
	"github.com/gin-gonic/gin"
)

type DietTargetHandler struct {
	dietTargetService diettarget.DietTargetService
}

func NewDietTargetHandler(dietTargetService diettarget.DietTargetService) *DietTargetHandler {
	return &DietTargetHandler{
		dietTargetService: dietTargetService,
	}
}

func (h *DietTargetHandler) CreateDietTarget(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input dietDto.CreateDietTargetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.dietTargetService.Create(c.Request.Context(), actor, c.Param("username"), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *DietTargetHandler) GetDietTarget(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	res, err := h.dietTargetService.GetByUsername(c.Request.Context(), middleware.ActorFrom(c), username)
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

func (h *DietTargetHandler) UpdateDietTarget(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input dietDto.UpdateDietTargetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	updated, err := h.dietTargetService.Update(c.Request.Context(), actor, c.Param("username"), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *DietTargetHandler) DeleteDietTarget(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.dietTargetService.Delete(c.Request.Context(), actor, c.Param("username")); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "diet target deleted"})
}
