package response

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"anoa.com/fittrack/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	return c, rec
}

func TestGetUserID(t *testing.T) {
	c, _ := testContext()

	_, err := GetUserID(c)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	id := uuid.New()
	c.Set("user_id", id.String())

	got, err := GetUserID(c)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestGetUserRole(t *testing.T) {
	c, _ := testContext()
	assert.Equal(t, "", GetUserRole(c))

	c.Set("user_role", "admin")
	assert.Equal(t, "admin", GetUserRole(c))
}

// A denied read and a genuinely missing resource must answer with the same
// status and the same body.
func TestResponseNotFoundMatchesPlainNotFound(t *testing.T) {
	denied, deniedRec := testContext()
	ResponseNotFound(denied)

	missing, missingRec := testContext()
	ResponseError(missing, apperror.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, deniedRec.Code)
	assert.Equal(t, missingRec.Code, deniedRec.Code)
	assert.Equal(t, missingRec.Body.String(), deniedRec.Body.String())
}

func TestResponseNotFoundHidesWrappedContext(t *testing.T) {
	wrapped, wrappedRec := testContext()
	ResponseError(wrapped, fmt.Errorf("progress log %s: %w", uuid.New(), apperror.ErrNotFound))

	plain, plainRec := testContext()
	ResponseNotFound(plain)

	// ResponseError leaks the wrapped detail; ResponseNotFound never does.
	assert.Equal(t, http.StatusNotFound, wrappedRec.Code)
	assert.NotEqual(t, wrappedRec.Body.String(), plainRec.Body.String())
}
