package integration_tests

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/controllers"
	"github.com/hyperforge/hyperforge.go/gameserver"
	"github.com/hyperforge/hyperforge.go/lib"
	"github.com/hyperforge/hyperforge.go/lib/responses"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/hyperforge/hyperforge.go/lib/tokens"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ImportExportTestSuite struct {
	TestSuite
	Service     *service.ForgeService
	mesh        *MockMeshProvider
	storage     *MockStorage
	manifestDir string
	userToken   string
}

func (suite *ImportExportTestSuite) SetupSuite() {
	suite.mesh = NewMockMeshProvider()
	suite.storage = NewMockStorage()
	suite.manifestDir = suite.T().TempDir()
	manifestClient, err := gameserver.NewLocalManifestClient(&gameserver.Config{LocalManifestDir: suite.manifestDir})
	if err != nil {
		log.Fatalf("Error initializing local manifest client: %v", err)
	}
	svc, err := ForgeTestServiceInit(suite.mesh, nil, suite.storage, manifestClient)
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
	importCtrl := controllers.NewImportController(svc)
	suite.echo.GET("/v2/manifests", importCtrl.GetManifests)
	suite.echo.POST("/v2/import", importCtrl.Import)
	suite.echo.GET("/v2/graph", controllers.NewGraphController(svc).GetGraph)
	exportCtrl := controllers.NewExportController(svc)
	suite.echo.POST("/v2/sync", exportCtrl.Sync)
	suite.echo.GET("/v2/sync/status", exportCtrl.SyncStatus)
	suite.echo.POST("/v2/export", exportCtrl.Export)
	suite.echo.GET("/v2/exports", exportCtrl.GetExports)
	assetCtrl := controllers.NewAssetController(svc)
	suite.echo.GET("/v2/assets", assetCtrl.GetAssets)
	suite.echo.GET("/v2/assets/:id", assetCtrl.GetAsset)
	suite.echo.POST("/v2/generate/image", controllers.NewGenerateController(svc).GenerateFromImage)
	suite.echo.POST("/v2/enhance/regenerate", controllers.NewEnhanceController(svc).Regenerate)
	suite.echo.POST("/v2/assets/:id/versions/:version/restore", controllers.NewVersionController(svc).RestoreVersion)
}

// SetupTest reseeds the manifest files, exports from the previous test
// mutate them on disk.
func (suite *ImportExportTestSuite) SetupTest() {
	stale, err := filepath.Glob(filepath.Join(suite.manifestDir, "*.json"))
	assert.NoError(suite.T(), err)
	for _, path := range stale {
		assert.NoError(suite.T(), os.Remove(path))
	}
	suite.writeManifest("items", []gameserver.ManifestEntry{
		{
			ID:          "iron_sword",
			Name:        "Iron Sword",
			Category:    "weapon",
			Description: "a dependable blade",
			ModelURL:    "https://cdn.game.test/models/iron_sword.glb",
			IconURL:     "https://cdn.game.test/icons/iron_sword.png",
			Stats:       map[string]interface{}{"damage": 7.0},
			CraftsFrom:  []string{"iron_ingot"},
		},
		{
			ID:       "health_potion",
			Name:     "Health Potion",
			ModelURL: "https://cdn.game.test/models/health_potion.glb",
		},
		{
			ID:       "wooden_shield",
			Name:     "Wooden Shield",
			Category: "armor",
		},
	})
	suite.writeManifest("npcs", []gameserver.ManifestEntry{
		{
			ID:       "wolf",
			Name:     "Wolf",
			ModelURL: "https://cdn.game.test/models/wolf.glb",
			Drops:    []gameserver.DropRef{{ItemID: "iron_sword", Chance: 0.25}},
		},
	})
}

func (suite *ImportExportTestSuite) TearDownTest() {
	for _, table := range []string{"export_records", "asset_versions", "generation_jobs", "assets"} {
		err := clearTable(suite.Service, table)
		if err != nil {
			fmt.Printf("Tear down test error %v\n", err.Error())
			return
		}
	}
	fmt.Println("Tear down test success")
}

func (suite *ImportExportTestSuite) writeManifest(name string, entries []gameserver.ManifestEntry) {
	data, err := json.Marshal(entries)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), os.WriteFile(filepath.Join(suite.manifestDir, name+".json"), data, 0644))
}

func (suite *ImportExportTestSuite) readManifest(name string) []gameserver.ManifestEntry {
	data, err := os.ReadFile(filepath.Join(suite.manifestDir, name+".json"))
	assert.NoError(suite.T(), err)
	entries := []gameserver.ManifestEntry{}
	assert.NoError(suite.T(), json.Unmarshal(data, &entries))
	return entries
}

func (suite *ImportExportTestSuite) importReq(body *controllers.ImportRequestBody) *service.ImportSummary {
	rec := suite.request(http.MethodPost, "/v2/import", body, suite.userToken)
	summary := &service.ImportSummary{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(summary))
	return summary
}

// completeForgeAsset runs an image-to-3d generation through to the
// completed state.
func (suite *ImportExportTestSuite) completeForgeAsset(name, category string) *controllers.GetAssetResponseBody {
	rec := suite.request(http.MethodPost, "/v2/generate/image", &controllers.ImageGenerateRequestBody{
		ImageUrl: fmt.Sprintf("https://images.test/%s.png", name),
		Name:     name,
		Category: category,
	}, suite.userToken)
	generateResponse := &controllers.GenerateResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(generateResponse))
	suite.mesh.SucceedTask(suite.mesh.LastTaskID(), fmt.Sprintf("https://cdn.meshy.test/%s.glb", name), "")
	suite.Service.CheckAllInflightJobs(context.Background())
	return suite.getAssetReq(generateResponse.Asset.ID, suite.userToken)
}

func (suite *ImportExportTestSuite) TestListManifests() {
	rec := suite.request(http.MethodGet, "/v2/manifests", nil, suite.userToken)
	manifestsResponse := &controllers.GetManifestsResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(manifestsResponse))
	assert.Equal(suite.T(), 2, len(manifestsResponse.Manifests))
	assert.Equal(suite.T(), "items", manifestsResponse.Manifests[0].Name)
	assert.Equal(suite.T(), 3, manifestsResponse.Manifests[0].AssetCount)
	assert.Equal(suite.T(), gameserver.LOCAL_CLIENT_TYPE, manifestsResponse.Manifests[0].Source)
	assert.Equal(suite.T(), "npcs", manifestsResponse.Manifests[1].Name)
	assert.Equal(suite.T(), 1, manifestsResponse.Manifests[1].AssetCount)
}

func (suite *ImportExportTestSuite) TestImportManifest() {
	summary := suite.importReq(&controllers.ImportRequestBody{
		Selections: []controllers.ImportSelectionBody{{Manifest: "items"}},
	})
	assert.Equal(suite.T(), 2, summary.Imported)
	assert.Equal(suite.T(), 1, summary.Skipped)
	assert.Equal(suite.T(), 0, summary.Failed)
	assert.Equal(suite.T(), 3, len(summary.Results))

	rec := suite.request(http.MethodGet, "/v2/assets?source=cdn", nil, suite.userToken)
	assetsResponse := &controllers.GetAssetsResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(assetsResponse))
	assert.Equal(suite.T(), 2, len(assetsResponse.Assets))

	byName := map[string]controllers.Asset{}
	for _, asset := range assetsResponse.Assets {
		byName[asset.Name] = asset
	}
	sword := byName["Iron Sword"]
	assert.Equal(suite.T(), "weapon", sword.Category)
	assert.Equal(suite.T(), common.AssetSourceCDN, sword.Source)
	assert.Equal(suite.T(), common.AssetStateCompleted, sword.State)
	assert.Equal(suite.T(), "https://cdn.game.test/models/iron_sword.glb", sword.ModelUrl)
	assert.Equal(suite.T(), "items", sword.Metadata["manifest"])
	assert.Equal(suite.T(), "iron_sword", sword.Metadata["manifest_id"])
	// entries without a category land in the manifest's default one
	assert.Equal(suite.T(), "prop", byName["Health Potion"].Category)

	// importing again skips everything
	summary = suite.importReq(&controllers.ImportRequestBody{
		Selections: []controllers.ImportSelectionBody{{Manifest: "items"}},
	})
	assert.Equal(suite.T(), 0, summary.Imported)
	assert.Equal(suite.T(), 3, summary.Skipped)
}

func (suite *ImportExportTestSuite) TestImportSelectedEntries() {
	summary := suite.importReq(&controllers.ImportRequestBody{
		Selections: []controllers.ImportSelectionBody{{Manifest: "items", EntryIDs: []string{"iron_sword", "ghost_item"}}},
	})
	assert.Equal(suite.T(), 1, summary.Imported)
	assert.Equal(suite.T(), 1, summary.Failed)
	assert.Equal(suite.T(), service.ImportStatusImported, summary.Results[0].Status)
	assert.NotEmpty(suite.T(), summary.Results[0].PublicID)
	assert.Equal(suite.T(), service.ImportStatusFailed, summary.Results[1].Status)
	assert.Equal(suite.T(), "entry not found in manifest", summary.Results[1].Reason)
}

func (suite *ImportExportTestSuite) TestImportUnknownManifest() {
	rec := suite.request(http.MethodPost, "/v2/import", &controllers.ImportRequestBody{
		Selections: []controllers.ImportSelectionBody{{Manifest: "vehicles"}},
	}, suite.userToken)
	errorResponse := checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.UnknownManifestError.Message, errorResponse.Message)
}

func (suite *ImportExportTestSuite) TestRelationshipGraph() {
	rec := suite.request(http.MethodGet, "/v2/graph", nil, suite.userToken)
	graph := &service.RelationshipGraph{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(graph))

	// 4 manifest entries plus the iron_ingot placeholder
	assert.Equal(suite.T(), 5, graph.Stats.Nodes)
	assert.Equal(suite.T(), 2, graph.Stats.Edges)
	assert.Equal(suite.T(), 1, graph.Stats.Missing)
	assert.Equal(suite.T(), 3, graph.Stats.PerManifest["items"])
	assert.Equal(suite.T(), 1, graph.Stats.PerManifest["npcs"])
	assert.Equal(suite.T(), 1, graph.Stats.PerRelation[common.RelationDrops])
	assert.Equal(suite.T(), 1, graph.Stats.PerRelation[common.RelationCraftsFrom])

	nodes := map[string]service.GraphNode{}
	for _, node := range graph.Nodes {
		nodes[node.ID] = node
	}
	assert.True(suite.T(), nodes["iron_ingot"].Missing)
	assert.False(suite.T(), nodes["iron_sword"].Missing)
	assert.True(suite.T(), nodes["iron_sword"].HasModel)
	assert.False(suite.T(), nodes["wooden_shield"].HasModel)
	// npc entries without a category get the manifest default
	assert.Equal(suite.T(), "npc", nodes["wolf"].Category)

	edges := map[string]service.GraphEdge{}
	for _, edge := range graph.Edges {
		edges[edge.From+">"+edge.To] = edge
	}
	assert.Equal(suite.T(), common.RelationDrops, edges["wolf>iron_sword"].Relation)
	assert.Equal(suite.T(), 0.25, edges["wolf>iron_sword"].Chance)
	assert.Equal(suite.T(), common.RelationCraftsFrom, edges["iron_sword>iron_ingot"].Relation)
}

func (suite *ImportExportTestSuite) TestExportAssets() {
	asset := suite.completeForgeAsset("Crate", "prop")

	rec := suite.request(http.MethodPost, "/v2/export", &controllers.ExportRequestBody{
		Manifest: "items",
		AssetIDs: []string{asset.ID},
	}, suite.userToken)
	record := &controllers.ExportRecord{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(record))
	assert.Equal(suite.T(), "items", record.Manifest)
	assert.Equal(suite.T(), common.ExportStateCompleted, record.State)
	assert.Equal(suite.T(), gameserver.LOCAL_CLIENT_TYPE, record.Destination)
	assert.Equal(suite.T(), 1, record.AssetCount)
	assert.Equal(suite.T(), []string{asset.ID}, record.AssetIDs)
	assert.NotNil(suite.T(), record.FinishedAt)

	// the manifest file on disk now carries the new entry
	entries := suite.readManifest("items")
	assert.Equal(suite.T(), 4, len(entries))
	crate := entries[3]
	assert.Equal(suite.T(), "crate", crate.ID)
	assert.Equal(suite.T(), "Crate", crate.Name)
	assert.Equal(suite.T(), "prop", crate.Category)
	assert.Equal(suite.T(), asset.ModelUrl, crate.ModelURL)

	// a json copy of the push lands in the content bucket
	assert.True(suite.T(), suite.storage.Has("content", fmt.Sprintf("exports/items/%d.json", record.ID)))
}

func (suite *ImportExportTestSuite) TestExportKeepsImportedEntryID() {
	summary := suite.importReq(&controllers.ImportRequestBody{
		Selections: []controllers.ImportSelectionBody{{Manifest: "items", EntryIDs: []string{"iron_sword"}}},
	})
	assert.Equal(suite.T(), 1, summary.Imported)

	rec := suite.request(http.MethodPost, "/v2/export", &controllers.ExportRequestBody{
		Manifest: "items",
		AssetIDs: []string{summary.Results[0].PublicID},
	}, suite.userToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	// round trip updates the original entry instead of duplicating it
	entries := suite.readManifest("items")
	assert.Equal(suite.T(), 3, len(entries))
	assert.Equal(suite.T(), "iron_sword", entries[0].ID)
	assert.Equal(suite.T(), "Iron Sword", entries[0].Name)
}

func (suite *ImportExportTestSuite) TestExportRejectsUnfinishedAsset() {
	rec := suite.request(http.MethodPost, "/v2/generate/image", &controllers.ImageGenerateRequestBody{
		ImageUrl: "https://images.test/barrel.png",
		Name:     "Barrel",
		Category: "prop",
	}, suite.userToken)
	generateResponse := &controllers.GenerateResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(generateResponse))

	rec = suite.request(http.MethodPost, "/v2/export", &controllers.ExportRequestBody{
		Manifest: "items",
		AssetIDs: []string{generateResponse.Asset.ID},
	}, suite.userToken)
	errorResponse := checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.AssetNotReadyError.Message, errorResponse.Message)
}

func (suite *ImportExportTestSuite) TestExportUnknownManifest() {
	rec := suite.request(http.MethodPost, "/v2/export", &controllers.ExportRequestBody{
		Manifest: "vehicles",
		AssetIDs: []string{"whatever"},
	}, suite.userToken)
	errorResponse := checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.UnknownManifestError.Message, errorResponse.Message)
}

func (suite *ImportExportTestSuite) TestSyncManifests() {
	suite.completeForgeAsset("Crate", "prop")
	suite.completeForgeAsset("Hut", "building")

	rec := suite.request(http.MethodPost, "/v2/sync", nil, suite.userToken)
	syncResponse := &controllers.SyncResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(syncResponse))
	assert.Equal(suite.T(), len(common.Manifests), len(syncResponse.Results))

	exported := map[string]int{}
	for _, result := range syncResponse.Results {
		assert.Empty(suite.T(), result.Error)
		exported[result.Manifest] = result.Exported
	}
	assert.Equal(suite.T(), 1, exported["items"])
	assert.Equal(suite.T(), 0, exported["npcs"])
	assert.Equal(suite.T(), 0, exported["resources"])
	assert.Equal(suite.T(), 1, exported["buildings"])

	// the buildings manifest did not exist before the sync
	buildings := suite.readManifest("buildings")
	assert.Equal(suite.T(), 1, len(buildings))
	assert.Equal(suite.T(), "hut", buildings[0].ID)

	rec = suite.request(http.MethodGet, "/v2/exports", nil, suite.userToken)
	exportsResponse := &controllers.GetExportsResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(exportsResponse))
	assert.Equal(suite.T(), 2, len(exportsResponse.Exports))
}

func (suite *ImportExportTestSuite) TestSyncStatus() {
	suite.completeForgeAsset("Crate", "prop")
	rec := suite.request(http.MethodPost, "/v2/sync", nil, suite.userToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	rec = suite.request(http.MethodGet, "/v2/sync/status", nil, suite.userToken)
	status := &service.SyncStatus{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(status))
	assert.Equal(suite.T(), gameserver.LOCAL_CLIENT_TYPE, status.Mode)
	assert.True(suite.T(), status.Reachable)
	assert.Equal(suite.T(), 2, len(status.Manifests))
	assert.Equal(suite.T(), "items", status.Manifests[0].Name)
	assert.NotNil(suite.T(), status.Manifests[0].LastExportAt)
	assert.Equal(suite.T(), common.ExportStateCompleted, status.Manifests[0].LastExportState)
	assert.Equal(suite.T(), "npcs", status.Manifests[1].Name)
	assert.Nil(suite.T(), status.Manifests[1].LastExportAt)
}

func (suite *ImportExportTestSuite) TestImportedAssetsAreImmutable() {
	summary := suite.importReq(&controllers.ImportRequestBody{
		Selections: []controllers.ImportSelectionBody{{Manifest: "items", EntryIDs: []string{"iron_sword"}}},
	})
	assert.Equal(suite.T(), 1, summary.Imported)
	assetId := summary.Results[0].PublicID

	rec := suite.request(http.MethodPost, "/v2/enhance/regenerate", &controllers.RegenerateRequestBody{
		AssetID: assetId,
	}, suite.userToken)
	errorResponse := checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.CdnAssetImmutableError.Message, errorResponse.Message)

	rec = suite.request(http.MethodPost, "/v2/assets/"+assetId+"/versions/1/restore", nil, suite.userToken)
	errorResponse = checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.CdnAssetImmutableError.Message, errorResponse.Message)
}

func TestImportExportTestSuite(t *testing.T) {
	suite.Run(t, new(ImportExportTestSuite))
}
