package transport

import (
	"time"

	"github.com/hyperforge/hyperforge.go/controllers"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterV2Endpoints(svc *service.ForgeService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	e.GET("/", controllers.NewHomeController(svc).Home)
	e.GET("/healthz", controllers.NewHealthController(svc).Check)
	e.POST("/auth", controllers.NewAuthController(svc).Auth, strictRateLimitMiddleware)

	if svc.Config.AllowAccountCreation {
		e.POST("/v2/users", controllers.NewCreateUserController(svc).CreateUser, strictRateLimitMiddleware, adminMw, logMw)
	}

	assetCtrl := controllers.NewAssetController(svc)
	secured.GET("/v2/assets", assetCtrl.GetAssets)
	secured.GET("/v2/assets/:id", assetCtrl.GetAsset)
	secured.DELETE("/v2/assets/:id", assetCtrl.DeleteAsset)
	// the share qr is scanned outside the studio, no auth
	e.GET("/v2/assets/:id/qr", assetCtrl.GetAssetQR)

	generateCtrl := controllers.NewGenerateController(svc)
	securedWithStrictRateLimit.POST("/v2/generate", generateCtrl.Generate)
	securedWithStrictRateLimit.POST("/v2/generate/image", generateCtrl.GenerateFromImage)
	securedWithStrictRateLimit.POST("/v2/generate/concept", generateCtrl.GenerateConcept)
	securedWithStrictRateLimit.POST("/v2/generate/refine", generateCtrl.Refine)

	enhanceCtrl := controllers.NewEnhanceController(svc)
	secured.POST("/v2/enhance/prompt", enhanceCtrl.EnhancePrompt)
	securedWithStrictRateLimit.POST("/v2/enhance/retexture", enhanceCtrl.Retexture)
	securedWithStrictRateLimit.POST("/v2/enhance/regenerate", enhanceCtrl.Regenerate)

	variantCtrl := controllers.NewVariantController(svc)
	securedWithStrictRateLimit.POST("/v2/variants", variantCtrl.CreateVariant)
	secured.GET("/v2/variants/:id", variantCtrl.GetVariants)

	jobCtrl := controllers.NewJobController(svc)
	secured.GET("/v2/jobs", jobCtrl.GetJobs)
	secured.GET("/v2/jobs/:id", jobCtrl.GetJob)

	versionCtrl := controllers.NewVersionController(svc)
	secured.GET("/v2/assets/:id/versions", versionCtrl.GetVersions)
	secured.POST("/v2/assets/:id/versions", versionCtrl.CreateSnapshot)
	secured.GET("/v2/assets/:id/versions/diff", versionCtrl.DiffVersions)
	secured.POST("/v2/assets/:id/versions/:version/restore", versionCtrl.RestoreVersion)

	// manifest reads are cached, imports and the graph hit every manifest file
	manifestCache := CreateCacheClient(time.Duration(svc.ManifestConfig.CacheTTLSeconds) * time.Second).Middleware()

	importCtrl := controllers.NewImportController(svc)
	secured.GET("/v2/manifests", importCtrl.GetManifests, manifestCache)
	securedWithStrictRateLimit.POST("/v2/import", importCtrl.Import)

	// the graph walks every manifest on each build, so it gets its own ttl
	graphCache := CreateCacheClient(time.Duration(svc.Config.GraphCacheSeconds) * time.Second).Middleware()
	secured.GET("/v2/graph", controllers.NewGraphController(svc).GetGraph, graphCache)

	exportCtrl := controllers.NewExportController(svc)
	securedWithStrictRateLimit.POST("/v2/sync", exportCtrl.Sync)
	secured.GET("/v2/sync/status", exportCtrl.SyncStatus)
	securedWithStrictRateLimit.POST("/v2/export", exportCtrl.Export)
	secured.GET("/v2/exports", exportCtrl.GetExports)
}
