package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitcoindeepa/miniapp-gateway/internal/interfaces/http/response"
)

func TestEnvelopes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success carries data, message, status and meta", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("request_id", "req-1")

		response.OK(c, "Fetched", gin.H{"x": 1})

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Fetched", body["message"])
		assert.Equal(t, float64(200), body["status"])
		assert.Equal(t, map[string]interface{}{"x": float64(1)}, body["data"])
		meta := body["meta"].(map[string]interface{})
		assert.Equal(t, "req-1", meta["request_id"])
	})

	t.Run("error carries code and mirrors status", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.UpstreamError(c, http.StatusBadGateway, "upstream broke")

		require.Equal(t, http.StatusBadGateway, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "UPSTREAM_ERROR", body["error"])
		assert.Equal(t, "upstream broke", body["message"])
		assert.Equal(t, float64(502), body["status"])
		// A request id is minted even outside the middleware chain.
		meta := body["meta"].(map[string]interface{})
		assert.NotEmpty(t, meta["request_id"])
	})

	t.Run("unauthorized helper", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.Unauthorized(c, "Missing authorization header")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})
}
