package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"edufin/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name  string
		p     principal
		roles []string
		perms []string
		want  bool
	}{
		{
			name:  "super admin bypasses everything",
			p:     principal{Role: models.RoleSuperAdmin},
			roles: []string{models.RoleAdmin},
			perms: []string{models.PermUserManagement},
			want:  true,
		},
		{
			name: "no requirements allows any principal",
			p:    principal{Role: models.RoleStudent},
			want: true,
		},
		{
			name:  "student shortcut on a student route",
			p:     principal{Role: models.RoleStudent},
			roles: []string{models.RoleStudent},
			perms: []string{models.PermUserManagement},
			want:  true,
		},
		{
			name:  "admin with the required permission",
			p:     principal{Role: models.RoleAdmin, Permissions: []string{models.PermUserManagement}},
			roles: []string{models.RoleAdmin},
			perms: []string{models.PermUserManagement},
			want:  true,
		},
		{
			name:  "admin missing one of two permissions",
			p:     principal{Role: models.RoleAdmin, Permissions: []string{models.PermUserManagement}},
			roles: []string{models.RoleAdmin},
			perms: []string{models.PermUserManagement, models.PermStudentManagement},
			want:  false,
		},
		{
			name:  "role mismatch",
			p:     principal{Role: models.RoleStudent},
			roles: []string{models.RoleAdmin},
			want:  false,
		},
		{
			name:  "permissions alone can grant access",
			p:     principal{Role: models.RoleAdmin, Permissions: []string{models.PermDashboardAccess}},
			perms: []string{models.PermDashboardAccess},
			want:  true,
		},
		{
			name:  "role match with no permission requirement",
			p:     principal{Role: models.RoleAdmin},
			roles: []string{models.RoleAdmin},
			want:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, authorize(tc.p, tc.roles, tc.perms))
		})
	}
}

func guardTestApp(t *testing.T, devBypass bool) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return &app{cfg: config{
		JWTSecret:      "test-secret",
		JWTExpiresIn:   time.Hour,
		AuthDisableDev: devBypass,
	}}
}

func guardRequest(t *testing.T, a *app, roles, perms []string, token string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.GET("/guarded", a.guard(roles, perms), func(c *gin.Context) {
		ok(c, "reached", nil)
	})
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGuardRejectsMissingToken(t *testing.T) {
	a := guardTestApp(t, false)
	w := guardRequest(t, a, nil, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGuardRejectsGarbageToken(t *testing.T) {
	a := guardTestApp(t, false)
	w := guardRequest(t, a, nil, nil, "not-a-jwt")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGuardAllowsSuperAdmin(t *testing.T) {
	a := guardTestApp(t, false)
	token, err := a.mintToken(models.User{Email: "root@example.com", Role: models.RoleSuperAdmin})
	require.NoError(t, err)

	w := guardRequest(t, a, []string{models.RoleAdmin}, []string{models.PermUserManagement}, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuardRejectsAdminWithoutPermission(t *testing.T) {
	a := guardTestApp(t, false)
	token, err := a.mintToken(models.User{Email: "admin@example.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	w := guardRequest(t, a, []string{models.RoleAdmin}, []string{models.PermUserManagement}, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGuardAllowsAdminWithPermission(t *testing.T) {
	a := guardTestApp(t, false)
	token, err := a.mintToken(models.User{
		Email:       "admin@example.com",
		Role:        models.RoleAdmin,
		Permissions: []models.Permission{{Name: models.PermUserManagement}},
	})
	require.NoError(t, err)

	w := guardRequest(t, a, []string{models.RoleAdmin}, []string{models.PermUserManagement}, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuardRejectsTokenSignedWithWrongSecret(t *testing.T) {
	a := guardTestApp(t, false)
	other := guardTestApp(t, false)
	other.cfg.JWTSecret = "different-secret"
	token, err := other.mintToken(models.User{Email: "root@example.com", Role: models.RoleSuperAdmin})
	require.NoError(t, err)

	w := guardRequest(t, a, nil, nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func routerRequest(t *testing.T, a *app, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	r := a.routes()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Managing admin accounts requires user_management AND
// security_and_access_control; holding just one is not enough.
func TestAdminAccountRoutesNeedBothPermissions(t *testing.T) {
	a := guardTestApp(t, false)

	token, err := a.mintToken(models.User{
		Email:       "admin@example.com",
		Role:        models.RoleAdmin,
		Permissions: []models.Permission{{Name: models.PermUserManagement}},
	})
	require.NoError(t, err)

	w := routerRequest(t, a, http.MethodGet, "/admins", token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	both := principal{
		Role:        models.RoleAdmin,
		Permissions: []string{models.PermUserManagement, models.PermSecurityAndAccessControl},
	}
	required := []string{models.PermUserManagement, models.PermSecurityAndAccessControl}
	assert.True(t, authorize(both, []string{models.RoleAdmin}, required))
}

// The aid catalogue (types, discounts) is gated on
// financial_aid_grades_management, not on application processing.
func TestAidCatalogueRoutesUseGradesPermission(t *testing.T) {
	a := guardTestApp(t, false)

	token, err := a.mintToken(models.User{
		Email:       "admin@example.com",
		Role:        models.RoleAdmin,
		Permissions: []models.Permission{{Name: models.PermFinancialAidManagement}},
	})
	require.NoError(t, err)

	for _, path := range []string{"/financial-aid-types", "/financial-aid-discounts"} {
		w := routerRequest(t, a, http.MethodGet, path, token)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}

	grades := principal{
		Role:        models.RoleAdmin,
		Permissions: []string{models.PermFinancialAidGradesManagement},
	}
	assert.True(t, authorize(grades, []string{models.RoleAdmin},
		[]string{models.PermFinancialAidGradesManagement}))
}

// Checkout initiation is behind the student guard; anonymous calls never
// reach the gateway.
func TestInitiateTransactionRequiresStudentToken(t *testing.T) {
	a := guardTestApp(t, false)
	w := routerRequest(t, a, http.MethodPost, "/transaction/initiate", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGuardDevBypassSkipsEnforcement(t *testing.T) {
	a := guardTestApp(t, true)
	w := guardRequest(t, a, []string{models.RoleAdmin}, []string{models.PermUserManagement}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
