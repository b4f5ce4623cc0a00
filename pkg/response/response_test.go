package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"impact360-payments/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestOK(t *testing.T) {
	c, w := testContext()

	OK(c, "done", map[string]string{"k": "v"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "done", body["message"])
	assert.Equal(t, map[string]interface{}{"k": "v"}, body["data"])
	assert.NotEmpty(t, body["request_id"])
}

func TestOK_EmptyMessageOmitted(t *testing.T) {
	c, w := testContext()

	OK(c, "", nil)

	body := decode(t, w)
	_, hasMessage := body["message"]
	assert.False(t, hasMessage)
	_, hasData := body["data"]
	assert.False(t, hasData)
}

func TestError_AppError(t *testing.T) {
	c, w := testContext()

	Error(c, apperror.Validation("Missing required fields"), false)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Missing required fields", body["message"])
	_, hasDetail := body["error"]
	assert.False(t, hasDetail)
}

func TestError_DetailOnlyWhenVerbose(t *testing.T) {
	appErr := apperror.StatusQuery(errors.New("boom")).
		WithDetail(map[string]interface{}{"code": "invalid"})

	c, w := testContext()
	Error(c, appErr, false)
	body := decode(t, w)
	_, hasDetail := body["error"]
	assert.False(t, hasDetail)

	c, w = testContext()
	Error(c, appErr, true)
	body = decode(t, w)
	detail := body["error"].(map[string]interface{})
	assert.Equal(t, "invalid", detail["code"])
}

func TestError_UnknownError(t *testing.T) {
	c, w := testContext()

	Error(c, errors.New("something broke"), true)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Internal server error", body["message"])
}

func TestGetRequestID_FromContext(t *testing.T) {
	c, w := testContext()
	c.Set("request_id", "req-123")

	OK(c, "done", nil)

	body := decode(t, w)
	assert.Equal(t, "req-123", body["request_id"])
}
