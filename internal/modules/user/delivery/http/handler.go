package handler

import (
	"net/http"
	"strconv"

	followerService "anoa.com/fittrack/internal/modules/follower/service"
	"anoa.com/fittrack/internal/modules/search/service"
	userDto "anoa.com/fittrack/internal/modules/user/dto"
	userService "anoa.com/fittrack/internal/modules/user/service"
	"anoa.com/fittrack/pkg/response"
	"anoa.com/fittrack/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService   userService.AuthService
	searchService service.UserSearchService
	followers     followerService.FollowerService
}

func NewAuthHandler(authService userService.AuthService, searchService service.UserSearchService, followers followerService.FollowerService) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		searchService: searchService,
		followers:     followers,
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var input userDto.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input userDto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), sessionID.(string)); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// SearchUsers answers account discovery queries. Only usernames and display
// names are indexed, so the result set leaks nothing gated by privacy; each
// hit is annotated with the caller's follow status toward that user.
func (h *AuthHandler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	actorID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	docs, err := h.searchService.Search(query, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	results := make([]userDto.UserSearchResult, 0, len(docs))
	for _, doc := range docs {
		res := userDto.UserSearchResult{
			ID:           doc.ID,
			Username:     doc.Username,
			Name:         doc.Name,
			FollowStatus: followerService.StatusNone,
		}
		if id, parseErr := uuid.Parse(doc.ID); parseErr == nil {
			status, statusErr := h.followers.StatusFor(c.Request.Context(), actorID, id)
			if statusErr != nil {
				response.ResponseError(c, statusErr)
				return
			}
			res.FollowStatus = status
		}
		results = append(results, res)
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
