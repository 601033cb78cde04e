package integration_tests

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/controllers"
	"github.com/hyperforge/hyperforge.go/lib"
	"github.com/hyperforge/hyperforge.go/lib/responses"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/hyperforge/hyperforge.go/lib/tokens"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AssetVersionTestSuite struct {
	TestSuite
	Service   *service.ForgeService
	mesh      *MockMeshProvider
	storage   *MockStorage
	userToken string
}

func (suite *AssetVersionTestSuite) SetupSuite() {
	suite.mesh = NewMockMeshProvider()
	suite.storage = NewMockStorage()
	svc, err := ForgeTestServiceInit(suite.mesh, NewMockGateway(), suite.storage, nil)
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	_, userTokens, err := createUsers(svc, 1)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.Service = svc
	suite.userToken = userTokens[0]
	e := echo.New()

	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	suite.echo = e
	suite.echo.Use(tokens.Middleware(svc.Config.JWTSecret))
	generateCtrl := controllers.NewGenerateController(svc)
	suite.echo.POST("/v2/generate", generateCtrl.Generate)
	suite.echo.POST("/v2/generate/refine", generateCtrl.Refine)
	suite.echo.GET("/v2/assets/:id", controllers.NewAssetController(svc).GetAsset)
	versionCtrl := controllers.NewVersionController(svc)
	suite.echo.GET("/v2/assets/:id/versions", versionCtrl.GetVersions)
	suite.echo.POST("/v2/assets/:id/versions", versionCtrl.CreateSnapshot)
	suite.echo.GET("/v2/assets/:id/versions/diff", versionCtrl.DiffVersions)
	suite.echo.POST("/v2/assets/:id/versions/:version/restore", versionCtrl.RestoreVersion)
}

func (suite *AssetVersionTestSuite) TearDownTest() {
	for _, table := range []string{"asset_versions", "generation_jobs", "assets"} {
		err := clearTable(suite.Service, table)
		if err != nil {
			fmt.Printf("Tear down test error %v\n", err.Error())
			return
		}
	}
	fmt.Println("Tear down test success")
}

// refinedAsset generates an asset and refines it, leaving a completed
// asset with a preview and a refine snapshot in its version log. Also
// returns the model url of the preview stage for restore assertions.
func (suite *AssetVersionTestSuite) refinedAsset() (string, string) {
	generateResponse := suite.createGenerateReq(&controllers.GenerateRequestBody{
		Name:     "Rusty Sword",
		Category: "weapon",
		Prompt:   "rusty iron sword",
	}, suite.userToken)
	assetId := generateResponse.Asset.ID
	suite.mesh.SucceedTask(suite.mesh.LastTaskID(), "https://cdn.meshy.test/sword_preview.glb", "https://cdn.meshy.test/sword.png")
	suite.Service.CheckAllInflightJobs(context.Background())
	previewModelUrl := suite.getAssetReq(assetId, suite.userToken).ModelUrl

	rec := suite.request(http.MethodPost, "/v2/generate/refine", &controllers.RefineRequestBody{
		AssetID: assetId,
	}, suite.userToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	suite.mesh.SucceedTask(suite.mesh.LastTaskID(), "https://cdn.meshy.test/sword_refined.glb", "")
	suite.Service.CheckAllInflightJobs(context.Background())
	return assetId, previewModelUrl
}

func (suite *AssetVersionTestSuite) getVersions(assetId string) []controllers.Version {
	rec := suite.request(http.MethodGet, "/v2/assets/"+assetId+"/versions", nil, suite.userToken)
	versionsResponse := &controllers.GetVersionsResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(versionsResponse))
	return versionsResponse.Versions
}

func (suite *AssetVersionTestSuite) TestVersionLogAfterGeneration() {
	assetId, _ := suite.refinedAsset()

	versions := suite.getVersions(assetId)
	assert.Equal(suite.T(), 2, len(versions))
	// newest first, every finished job labels its snapshot with the job type
	assert.Equal(suite.T(), 2, versions[0].Version)
	assert.Equal(suite.T(), common.JobTypeRefine, versions[0].Label)
	assert.Equal(suite.T(), 1, versions[1].Version)
	assert.Equal(suite.T(), common.JobTypePreview, versions[1].Label)
	assert.NotEmpty(suite.T(), versions[0].Hash)
	assert.NotEqual(suite.T(), versions[1].Hash, versions[0].Hash)
	assert.Equal(suite.T(), versions[1].Hash, versions[0].ParentHash)
}

func (suite *AssetVersionTestSuite) TestSnapshotUnchangedAssetReturnsHead() {
	assetId, _ := suite.refinedAsset()

	version := suite.snapshotReq(assetId, "manual checkpoint", suite.userToken)
	// content identical to the head, no new version and no relabel
	assert.Equal(suite.T(), 2, version.Version)
	assert.Equal(suite.T(), common.JobTypeRefine, version.Label)
	assert.Equal(suite.T(), 2, len(suite.getVersions(assetId)))
}

func (suite *AssetVersionTestSuite) TestDiffVersions() {
	assetId, _ := suite.refinedAsset()

	rec := suite.request(http.MethodGet, "/v2/assets/"+assetId+"/versions/diff?from=1&to=2", nil, suite.userToken)
	diffResponse := &controllers.DiffResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(diffResponse))
	assert.Equal(suite.T(), 1, diffResponse.From)
	assert.Equal(suite.T(), 2, diffResponse.To)

	// only the refine output differs, sorted by field name
	assert.Equal(suite.T(), 2, len(diffResponse.Diff))
	assert.Equal(suite.T(), "model_url", diffResponse.Diff[0].Field)
	assert.Equal(suite.T(), service.DiffChanged, diffResponse.Diff[0].Kind)
	assert.Equal(suite.T(), "state", diffResponse.Diff[1].Field)
	assert.Equal(suite.T(), common.AssetStatePreview, diffResponse.Diff[1].From)
	assert.Equal(suite.T(), common.AssetStateCompleted, diffResponse.Diff[1].To)
}

func (suite *AssetVersionTestSuite) TestDiffMissingVersion() {
	assetId, _ := suite.refinedAsset()

	rec := suite.request(http.MethodGet, "/v2/assets/"+assetId+"/versions/diff?from=1&to=9", nil, suite.userToken)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	errorResponse := &responses.ErrorResponse{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(errorResponse))
	assert.Equal(suite.T(), responses.VersionNotFoundError.Message, errorResponse.Message)
}

func (suite *AssetVersionTestSuite) TestDiffWithoutVersionParams() {
	assetId, _ := suite.refinedAsset()

	rec := suite.request(http.MethodGet, "/v2/assets/"+assetId+"/versions/diff", nil, suite.userToken)
	errorResponse := checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.BadArgumentsError.Message, errorResponse.Message)
}

func (suite *AssetVersionTestSuite) TestRestoreVersion() {
	assetId, previewModelUrl := suite.refinedAsset()
	versions := suite.getVersions(assetId)

	rec := suite.request(http.MethodPost, "/v2/assets/"+assetId+"/versions/1/restore", nil, suite.userToken)
	restoreResponse := &controllers.RestoreResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(restoreResponse))
	assert.Equal(suite.T(), common.AssetStatePreview, restoreResponse.Asset.State)
	assert.Equal(suite.T(), previewModelUrl, restoreResponse.Asset.ModelUrl)
	// restores append to the log instead of rewriting it
	assert.Equal(suite.T(), 3, restoreResponse.Version.Version)
	assert.Equal(suite.T(), "restore v1", restoreResponse.Version.Label)
	assert.Equal(suite.T(), versions[1].Hash, restoreResponse.Version.Hash)
	assert.Equal(suite.T(), versions[0].Hash, restoreResponse.Version.ParentHash)

	assetResponse := suite.getAssetReq(assetId, suite.userToken)
	assert.Equal(suite.T(), common.AssetStatePreview, assetResponse.State)
	assert.Equal(suite.T(), 3, assetResponse.Version)
}

func (suite *AssetVersionTestSuite) TestRestoreRejectedWhileGenerating() {
	generateResponse := suite.createGenerateReq(&controllers.GenerateRequestBody{
		Name:     "Watch Tower",
		Category: "building",
		Prompt:   "a wooden watch tower",
	}, suite.userToken)

	rec := suite.request(http.MethodPost, "/v2/assets/"+generateResponse.Asset.ID+"/versions/1/restore", nil, suite.userToken)
	errorResponse := checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.GenerationInProgressError.Message, errorResponse.Message)
}

func (suite *AssetVersionTestSuite) TestVersionsForUnknownAsset() {
	rec := suite.request(http.MethodGet, "/v2/assets/unknown/versions", nil, suite.userToken)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	errorResponse := &responses.ErrorResponse{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(errorResponse))
	assert.Equal(suite.T(), responses.AssetNotFoundError.Message, errorResponse.Message)
}

func TestAssetVersionTestSuite(t *testing.T) {
	suite.Run(t, new(AssetVersionTestSuite))
}
