package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"project-groups-backend/internal/auth"
	"project-groups-backend/internal/database/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	suite.Suite
	service *auth.AuthService
	user    *models.User
}

func (suite *AuthTestSuite) SetupTest() {
	service, err := auth.NewAuthService(&auth.AuthConfig{JWTSecret: "test-secret"})
	require.NoError(suite.T(), err)
	suite.service = service
	suite.user = &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Username:  "lhamdan",
		Email:     "lhamdan@test.edu",
		Role:      models.UserRoleStudent,
	}
}

func (suite *AuthTestSuite) TestNewAuthService_RequiresSecret() {
	service, err := auth.NewAuthService(&auth.AuthConfig{})

	assert.Nil(suite.T(), service)
	assert.ErrorContains(suite.T(), err, "JWT secret")
}

func (suite *AuthTestSuite) TestGenerateAndValidateJWT_Roundtrip() {
	token, err := suite.service.GenerateJWT(suite.user)
	require.NoError(suite.T(), err)
	require.NotEmpty(suite.T(), token)

	claims, err := suite.service.ValidateJWT(token)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.user.ID, claims.UserID)
	assert.Equal(suite.T(), "lhamdan", claims.Username)
	assert.Equal(suite.T(), models.UserRoleStudent, claims.Role)
	assert.Equal(suite.T(), suite.user.ID.String(), claims.Subject)
}

func (suite *AuthTestSuite) TestValidateJWT_WrongSecret() {
	other, err := auth.NewAuthService(&auth.AuthConfig{JWTSecret: "other-secret"})
	require.NoError(suite.T(), err)

	token, err := other.GenerateJWT(suite.user)
	require.NoError(suite.T(), err)

	claims, err := suite.service.ValidateJWT(token)

	assert.Nil(suite.T(), claims)
	assert.Error(suite.T(), err)
}

func (suite *AuthTestSuite) TestValidateJWT_Expired() {
	expired, err := auth.NewAuthService(&auth.AuthConfig{JWTSecret: "test-secret", TokenTTL: -time.Minute})
	require.NoError(suite.T(), err)

	token, err := expired.GenerateJWT(suite.user)
	require.NoError(suite.T(), err)

	claims, err := suite.service.ValidateJWT(token)

	assert.Nil(suite.T(), claims)
	assert.Error(suite.T(), err)
}

func (suite *AuthTestSuite) TestValidateJWT_Garbage() {
	claims, err := suite.service.ValidateJWT("not.a.token")

	assert.Nil(suite.T(), claims)
	assert.Error(suite.T(), err)
}

func (suite *AuthTestSuite) newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware := auth.NewAuthMiddleware(suite.service)
	router := gin.New()
	router.GET("/protected", middleware.RequireAuth(), func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	router.GET("/deans-only", middleware.RequireAuth(), middleware.RequireRole(models.UserRoleDean), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func (suite *AuthTestSuite) TestRequireAuth_ValidToken() {
	router := suite.newProtectedRouter()
	token, err := suite.service.GenerateJWT(suite.user)
	require.NoError(suite.T(), err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), suite.user.ID.String())
}

func (suite *AuthTestSuite) TestRequireAuth_MissingHeader() {
	router := suite.newProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthTestSuite) TestRequireAuth_MalformedHeader() {
	router := suite.newProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthTestSuite) TestRequireRole_Forbidden() {
	router := suite.newProtectedRouter()
	token, err := suite.service.GenerateJWT(suite.user)
	require.NoError(suite.T(), err)

	req := httptest.NewRequest(http.MethodGet, "/deans-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *AuthTestSuite) TestRequireRole_Allowed() {
	router := suite.newProtectedRouter()
	dean := &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Username:  "dean",
		Email:     "dean@test.edu",
		Role:      models.UserRoleDean,
	}
	token, err := suite.service.GenerateJWT(dean)
	require.NoError(suite.T(), err)

	req := httptest.NewRequest(http.MethodGet, "/deans-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
