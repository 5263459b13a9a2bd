package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/quesadillascandy/candy-backend/internal/domain"
)

func identityRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{Identity()}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": UserIDFrom(c),
			"name":    UserNameFrom(c),
			"role":    string(RoleFrom(c)),
		})
	})
	r.GET("/probe", chain...)
	return r
}

func TestIdentityRejectsAnonymous(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"no headers", nil},
		{"id without role", map[string]string{"X-User-Id": "u1"}},
		{"role without id", map[string]string{"X-User-Role": "admin"}},
		{"blank id", map[string]string{"X-User-Id": "   ", "X-User-Role": "admin"}},
	}

	r := identityRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestIdentityPopulatesContext(t *testing.T) {
	r := identityRouter()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-User-Id", " u-42 ")
	req.Header.Set("X-User-Name", "Maria")
	req.Header.Set("X-User-Role", "production_manager")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u-42"`)
	assert.Contains(t, w.Body.String(), `"name":"Maria"`)
	assert.Contains(t, w.Body.String(), `"role":"production_manager"`)
}

func TestRequireStaff(t *testing.T) {
	tests := []struct {
		role domain.Role
		want int
	}{
		{domain.RoleAdmin, http.StatusOK},
		{domain.RoleProductionMgr, http.StatusOK},
		{domain.RoleFinancialAnalyst, http.StatusOK},
		{domain.RoleRetail, http.StatusForbidden},
		{domain.RoleWholesale, http.StatusForbidden},
		{domain.RoleExport, http.StatusForbidden},
	}

	r := identityRouter(RequireStaff())
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			req.Header.Set("X-User-Id", "u1")
			req.Header.Set("X-User-Role", string(tt.role))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
