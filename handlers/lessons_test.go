package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetUpRoutes(r)
	return r
}

func TestImportLessonRejectsInvalidDocument(t *testing.T) {
	r := testRouter()

	cases := []string{
		`{not json`,
		`{"id":"","slides":[{"id":"s1","title":"T","components":[]}]}`,
		`{"id":"l1","slides":[]}`,
		`{"id":"l1","slides":[{"id":"s1","title":"T","components":[{"id":"c1","type":"paragraph","props":{}},{"id":"c1","type":"heading","props":{}}]}]}`,
	}
	for _, body := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/lesson-import", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), "error")
	}
}

func TestComponentDefinitionsEndpoint(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/component-definitions", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"quiz"`)
	assert.Contains(t, w.Body.String(), `"scored":true`)
}

func TestDispatchActionRequiresUserID(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/play/l1/component/c1/action", strings.NewReader(`{"name":"check"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
