package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"resort-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:authtest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{Email: "staff@example.com"}
	user.ID = 42
	user.SetRoles([]string{models.RoleStaff})

	token, err := GenerateToken(user)
	require.NoError(t, err)

	claims, err := parseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "staff@example.com", claims.Subject)
	assert.Equal(t, []string{models.RoleStaff}, claims.Roles)
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	_, err := parseToken("not-a-token")
	assert.Error(t, err)
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newAuthTestDB(t)

	user := &models.User{Username: "staffer", Email: "staff@example.com", Password: "x"}
	user.SetRoles([]string{models.RoleStaff})
	require.NoError(t, db.Create(user).Error)

	router := gin.New()
	router.GET("/me", AuthRequired(db), func(c *gin.Context) {
		current := CurrentUser(c)
		require.NotNil(t, current)
		c.JSON(http.StatusOK, gin.H{"email": current.Email})
	})

	// no token
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// valid token
	token, err := GenerateToken(user)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "staff@example.com")

	// token for a deleted account
	ghost := &models.User{Email: "gone@example.com"}
	ghost.ID = 999
	token, err = GenerateToken(ghost)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	staff := &models.User{Email: "staff@example.com"}
	staff.SetRoles([]string{models.RoleStaff})

	router := gin.New()
	router.GET("/admin", func(c *gin.Context) {
		c.Set(currentUserKey, staff)
	}, RequireRoles(models.RoleAdmin, models.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/staff", func(c *gin.Context) {
		c.Set(currentUserKey, staff)
	}, RequireRoles(models.RoleAdmin, models.RoleManager, models.RoleStaff), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/staff", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
