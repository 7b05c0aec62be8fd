package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"storefront/models"
)

func TestCheckLoginMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		userID     any
		wantStatus int
	}{
		{
			name:       "authenticated request passes",
			userID:     uint(1),
			wantStatus: http.StatusOK,
		},
		{
			name:       "anonymous request is rejected",
			userID:     nil,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			if tt.userID != nil {
				router.Use(func(c *gin.Context) {
					c.Set("UserID", tt.userID)
				})
			}
			router.Use(CheckLoginMiddleware())
			router.GET("/probe", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCheckAdminPermissionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		role       any
		wantStatus int
	}{
		{
			name:       "admin passes",
			role:       models.RoleAdmin,
			wantStatus: http.StatusOK,
		},
		{
			name:       "regular user is rejected",
			role:       models.RoleUser,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing role is rejected",
			role:       nil,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			if tt.role != nil {
				router.Use(func(c *gin.Context) {
					c.Set("Role", tt.role)
				})
			}
			router.Use(CheckAdminPermissionMiddleware())
			router.GET("/probe", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
