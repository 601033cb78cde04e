package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/hyperforge/hyperforge.go/controllers"
	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/hyperforge/hyperforge.go/lib"
	"github.com/hyperforge/hyperforge.go/lib/responses"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserAuthTestSuite struct {
	suite.Suite
	Service   *service.ForgeService
	echo      *echo.Echo
	userLogin controllers.CreateUserResponseBody
}

func (suite *UserAuthTestSuite) SetupSuite() {
	svc, err := ForgeTestServiceInit(nil, nil, nil, nil)
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	users, _, err := createUsers(svc, 1)
	if err != nil {
		log.Fatalf("Error creating test users %v", err)
	}
	suite.Service = svc
	e := echo.New()

	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	suite.echo = e
	suite.echo.POST("/auth", controllers.NewAuthController(svc).Auth)
	assert.Equal(suite.T(), 1, len(users))
	suite.userLogin = users[0]
}

func (suite *UserAuthTestSuite) authRequest(body *controllers.AuthRequestBody) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/auth", &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *UserAuthTestSuite) TestAuth() {
	rec := suite.authRequest(&controllers.AuthRequestBody{
		Login:    suite.userLogin.Login,
		Password: suite.userLogin.Password,
	})
	responseBody := &controllers.AuthResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&responseBody))
	assert.NotEmpty(suite.T(), responseBody.AccessToken)
	assert.NotEmpty(suite.T(), responseBody.RefreshToken)

	// login again with only the refresh token
	rec = suite.authRequest(&controllers.AuthRequestBody{
		RefreshToken: responseBody.RefreshToken,
	})
	responseBody = &controllers.AuthResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&responseBody))
	assert.NotEmpty(suite.T(), responseBody.AccessToken)
	assert.NotEmpty(suite.T(), responseBody.RefreshToken)
}

func (suite *UserAuthTestSuite) TestAuthWithWrongPassword() {
	rec := suite.authRequest(&controllers.AuthRequestBody{
		Login:    suite.userLogin.Login,
		Password: "wrong",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
	errorResponse := &responses.ErrorResponse{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(errorResponse))
	assert.Equal(suite.T(), responses.BadAuthError.Message, errorResponse.Message)
}

func (suite *UserAuthTestSuite) TestAuthWithoutCredentials() {
	rec := suite.authRequest(&controllers.AuthRequestBody{})
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *UserAuthTestSuite) TestAuthDeactivatedUser() {
	deactivated, err := suite.Service.CreateUser(context.Background(), "sleeper", "a-long-password")
	assert.NoError(suite.T(), err)
	_, err = suite.Service.DB.NewUpdate().
		Model((*models.User)(nil)).
		Set("deactivated = ?", true).
		Where("id = ?", deactivated.ID).
		Exec(context.Background())
	assert.NoError(suite.T(), err)

	rec := suite.authRequest(&controllers.AuthRequestBody{
		Login:    "sleeper",
		Password: "a-long-password",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
	errorResponse := &responses.ErrorResponse{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(errorResponse))
	assert.Equal(suite.T(), responses.AccountDeactivatedError.Message, errorResponse.Message)
}

func TestUserAuthTestSuite(t *testing.T) {
	suite.Run(t, new(UserAuthTestSuite))
}
