package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errTeapot = errors.New("teapot")

func TestFromError(t *testing.T) {
	RegisterTranslator(func(err error) *AppError {
		if errors.Is(err, errTeapot) {
			return &AppError{HTTPStatus: http.StatusTeapot, Message: "short and stout"}
		}
		return nil
	})

	assert.Equal(t, http.StatusNotFound, FromError(NewNotFound("gone")).HTTPStatus)
	assert.Equal(t, http.StatusTeapot, FromError(errTeapot).HTTPStatus)

	generic := FromError(errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, generic.HTTPStatus)
	assert.Equal(t, "Something went wrong, please try again", generic.Message)
}

func TestError_WritesEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, NewBadRequest("rating is required"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "rating is required", body.Error)
	assert.True(t, c.IsAborted())
}

func TestSuccess_WritesEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Created(c, "Review submitted", gin.H{"id": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Review submitted", body["message"])
	assert.Equal(t, "abc", body["data"].(map[string]interface{})["id"])
}
