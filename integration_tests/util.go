package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/golang-jwt/jwt"
	"github.com/hyperforge/hyperforge.go/controllers"
	"github.com/hyperforge/hyperforge.go/db"
	"github.com/hyperforge/hyperforge.go/db/migrations"
	"github.com/hyperforge/hyperforge.go/gameserver"
	"github.com/hyperforge/hyperforge.go/gateway"
	"github.com/hyperforge/hyperforge.go/lib"
	"github.com/hyperforge/hyperforge.go/lib/responses"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/hyperforge/hyperforge.go/meshy"
	"github.com/hyperforge/hyperforge.go/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/uptrace/bun/migrate"
)

// ForgeTestServiceInit builds a service against a throwaway in-memory
// sqlite database. Nil clients are fine for suites that do not touch
// them.
func ForgeTestServiceInit(meshMock meshy.MeshProviderWrapper, gatewayMock gateway.PromptGatewayWrapper, storageMock storage.ObjectStorageWrapper, manifestSource gameserver.ManifestSourceWrapper) (svc *service.ForgeService, err error) {
	// a unique name per init keeps the suites isolated from each other
	dbUri := fmt.Sprintf("sqlite://file:forge_%s?mode=memory&cache=shared", random.String(8))
	c := &service.Config{
		DatabaseUri:           dbUri,
		JWTSecret:             []byte("SECRET"),
		JWTAccessTokenExpiry:  3600,
		JWTRefreshTokenExpiry: 3600,
		MaxVersionsPerAsset:   20,
		ViewerBaseUrl:         "http://viewer.test",
		AllowAccountCreation:  true,
	}

	dbConn, err := db.Open(c)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	_, err = migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	presets, err := service.LoadPresets("")
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}

	logger := lib.Logger(c.LogFilePath)
	svc = &service.ForgeService{
		Config:         c,
		DB:             dbConn,
		MeshClient:     meshMock,
		MeshConfig:     &meshy.Config{APIURL: "https://mock.meshy.test", PollIntervalSeconds: 1, PollTimeoutSeconds: 600},
		GatewayClient:  gatewayMock,
		StorageClient:  storageMock,
		StorageConfig:  &storage.Config{URL: "https://storage.test", ModelsBucket: "models", ImagesBucket: "images", ContentBucket: "content"},
		ManifestClient: manifestSource,
		ManifestConfig: &gameserver.Config{CacheTTLSeconds: 300},
		Logger:         logger,
		Presets:        presets,
	}

	svc.AssetPubSub = service.NewPubsub()
	return svc, nil
}

func clearTable(svc *service.ForgeService, tableName string) error {
	_, err := svc.DB.Exec(fmt.Sprintf("DELETE FROM %s", tableName))
	return err
}

// unsafe parse jwt method to pull out userId claim
// should be used only in integration_tests package
func getUserIdFromToken(token string) int64 {
	parsedToken, _, _ := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	claims, _ := parsedToken.Claims.(jwt.MapClaims)
	return int64(claims["id"].(float64))
}

func createUsers(svc *service.ForgeService, usersToCreate int) (logins []controllers.CreateUserResponseBody, tokens []string, err error) {
	logins = []controllers.CreateUserResponseBody{}
	tokens = []string{}
	for i := 0; i < usersToCreate; i++ {
		user, err := svc.CreateUser(context.Background(), "", "")
		if err != nil {
			return nil, nil, err
		}
		var login controllers.CreateUserResponseBody
		login.Login = user.Login
		login.Password = user.Password
		logins = append(logins, login)
		token, _, err := svc.GenerateToken(context.Background(), login.Login, login.Password, "")
		if err != nil {
			return nil, nil, err
		}
		tokens = append(tokens, token)
	}
	return logins, tokens, nil
}

type TestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func checkErrResponse(suite *TestSuite, rec *httptest.ResponseRecorder) *responses.ErrorResponse {
	errorResponse := &responses.ErrorResponse{}
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(errorResponse))
	return errorResponse
}

func (suite *TestSuite) request(method, target string, body interface{}, token string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *TestSuite) createGenerateReq(body *controllers.GenerateRequestBody, token string) *controllers.GenerateResponseBody {
	rec := suite.request(http.MethodPost, "/v2/generate", body, token)
	generateResponse := &controllers.GenerateResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(generateResponse))
	return generateResponse
}

func (suite *TestSuite) getAssetReq(assetId, token string) *controllers.GetAssetResponseBody {
	rec := suite.request(http.MethodGet, "/v2/assets/"+assetId, nil, token)
	assetResponse := &controllers.GetAssetResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(assetResponse))
	return assetResponse
}

func (suite *TestSuite) snapshotReq(assetId, label, token string) *controllers.Version {
	rec := suite.request(http.MethodPost, "/v2/assets/"+assetId+"/versions", &controllers.CreateSnapshotRequestBody{Label: label}, token)
	versionResponse := &controllers.Version{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(versionResponse))
	return versionResponse
}
