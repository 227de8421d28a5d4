package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agrinet/config"
	"agrinet/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Port:           "6000",
		MongoURI:       "mongodb://127.0.0.1:27017",
		DBName:         "agrinet_test",
		AllowedOrigins: []string{"http://localhost:3000"},
	}
	return SetupRouter(cfg, &handlers.Handler{})
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestUnknownAPIRouteReturnsJSON(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Endpoint not found", body["error"])
	assert.Equal(t, "/api/nope", body["path"])
}
