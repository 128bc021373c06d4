package middleware

import (
	"language_center_backend/internal/model"
	"language_center_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func roleRequest(t *testing.T, role model.UserRole, required ...model.UserRole) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx.Set("user", &util.Claims{UserID: 1, Role: role})

	RoleMiddleware(required...)(ctx)
	return w.Code
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		role     model.UserRole
		required []model.UserRole
		wantCode int
	}{
		{"matching role passes", model.Teacher, []model.UserRole{model.Teacher}, http.StatusOK},
		{"student blocked from teacher routes", model.Student, []model.UserRole{model.Teacher}, http.StatusForbidden},
		{"coordinator passes every gate", model.Coordinator, []model.UserRole{model.Teacher}, http.StatusOK},
		{"coordinator passes student gates too", model.Coordinator, []model.UserRole{model.Student}, http.StatusOK},
		{"teacher blocked from coordinator routes", model.Teacher, []model.UserRole{model.Coordinator}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := roleRequest(t, tt.role, tt.required...); code != tt.wantCode {
				t.Errorf("status = %d, want %d", code, tt.wantCode)
			}
		})
	}
}

func TestRoleMiddlewareWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RoleMiddleware(model.Teacher)(ctx)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
