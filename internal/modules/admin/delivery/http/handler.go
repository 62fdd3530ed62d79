package handler

import (
	"net/http"

	adminDto "anoa.com/fittrack/internal/modules/admin/dto"
	admin "anoa.com/fittrack/internal/modules/admin/service"
	"anoa.com/fittrack/pkg/response"
	"anoa.com/fittrack/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService admin.AdminService
}

func NewAdminHandler(adminService admin.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	res, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	res, err := h.adminService.GetUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) UpdateRole(c *gin.Context) {
	var input adminDto.UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.adminService.UpdateRole(c.Request.Context(), c.Param("username"), input.Role); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}

func (h *AdminHandler) SetActive(c *gin.Context) {
	var input adminDto.SetActiveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.adminService.SetActive(c.Request.Context(), c.Param("username"), *input.Active); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

func (h *AdminHandler) CreateBlock(c *gin.Context) {
	block, err := h.adminService.BlockOnBehalf(c.Request.Context(), c.Param("username"), c.Param("target"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, block)
}

func (h *AdminHandler) RemoveBlock(c *gin.Context) {
	if err := h.adminService.UnblockOnBehalf(c.Request.Context(), c.Param("username"), c.Param("target")); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "block removed"})
}

func (h *AdminHandler) ListBlocks(c *gin.Context) {
	blocks, err := h.adminService.ListBlocks(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"blocks": blocks})
}
