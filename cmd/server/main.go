package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/hyperforge/hyperforge.go/gameserver"
	"github.com/hyperforge/hyperforge.go/gateway"
	"github.com/hyperforge/hyperforge.go/meshy"
	"github.com/hyperforge/hyperforge.go/rabbitmq"
	"github.com/hyperforge/hyperforge.go/storage"
	ddEcho "gopkg.in/DataDog/dd-trace-go.v1/contrib/labstack/echo.v4"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/getsentry/sentry-go"
	"github.com/hyperforge/hyperforge.go/db"
	"github.com/hyperforge/hyperforge.go/db/migrations"
	"github.com/hyperforge/hyperforge.go/docs"
	"github.com/hyperforge/hyperforge.go/lib"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/hyperforge/hyperforge.go/lib/tokens"
	"github.com/hyperforge/hyperforge.go/lib/transport"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/uptrace/bun/migrate"
)

// @title        HyperForge
// @version      2.0.0
// @description  Game asset studio backend generating, versioning and exporting 3d assets.

// @contact.name  HyperForge

// @license.name  GNU GPLv3
// @license.url   https://www.gnu.org/licenses/gpl-3.0.en.html

// @BasePath  /

// @securitydefinitions.oauth2.password  OAuth2Password
// @tokenUrl                             /auth
// @schemes                              https http
func main() {

	c := &service.Config{}

	// Load configuration from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configured log file
	logger := lib.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}

	// Migrate the DB
	startupCtx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	_, err = migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}
	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			IgnoreErrors:     []string{"401"},
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}
	// Init the mesh provider client
	meshCfg, err := meshy.LoadConfig()
	if err != nil {
		logger.Fatalf("Error loading mesh provider config: %v", err)
	}
	meshClient, err := meshy.InitMeshClient(meshCfg, logger, startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing the mesh provider connection: %v", err)
	}
	// Init the ai gateway client for prompt enhancement and concept art
	gatewayCfg, err := gateway.LoadConfig()
	if err != nil {
		logger.Fatalf("Error loading ai gateway config: %v", err)
	}
	gatewayClient, err := gateway.InitGatewayClient(gatewayCfg, logger, startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing the ai gateway connection: %v", err)
	}
	// Init the object storage client
	storageCfg, err := storage.LoadConfig()
	if err != nil {
		logger.Fatalf("Error loading storage config: %v", err)
	}
	storageClient, err := storage.InitStorageClient(storageCfg, logger, startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing the storage connection: %v", err)
	}
	// Init the game server manifest client
	manifestCfg, err := gameserver.LoadConfig()
	if err != nil {
		logger.Fatalf("Error loading game server config: %v", err)
	}
	manifestClient, err := gameserver.InitManifestClient(manifestCfg, logger, startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing the manifest source: %v", err)
	}
	// Load the per-category generation presets
	presets, err := service.LoadPresets(c.PresetsPath)
	if err != nil {
		logger.Fatalf("Error loading category presets: %v", err)
	}
	// If no RABBITMQ_URI was provided we will not attempt to create a client
	// No rabbitmq features will be available in this case.
	var rabbitmqClient rabbitmq.Client
	if c.RabbitMQUri != "" {
		amqpClient, err := rabbitmq.DialAMQP(c.RabbitMQUri, rabbitmq.WithAmqpLogger(logger))
		if err != nil {
			logger.Fatal(err)
		}

		defer amqpClient.Close()

		rabbitmqClient, err = rabbitmq.NewClient(amqpClient,
			rabbitmq.WithLogger(logger),
			rabbitmq.WithAssetExchange(c.RabbitMQAssetExchange),
		)
		if err != nil {
			logger.Fatal(err)
		}

		// close the connection gently at the end of the runtime
		defer rabbitmqClient.Close()
	}

	svc := &service.ForgeService{
		Config:         c,
		DB:             dbConn,
		MeshClient:     meshClient,
		MeshConfig:     meshCfg,
		GatewayClient:  gatewayClient,
		StorageClient:  storageClient,
		StorageConfig:  storageCfg,
		ManifestClient: manifestClient,
		ManifestConfig: manifestCfg,
		Logger:         logger,
		AssetPubSub:    service.NewPubsub(),
		RabbitMQClient: rabbitmqClient,
		Presets:        presets,
	}

	//init echo server
	e := transport.InitEcho(c, logger)
	//if Datadog is configured, add datadog middleware
	if c.DatadogAgentUrl != "" {
		tracer.Start(tracer.WithAgentAddr(c.DatadogAgentUrl))
		defer tracer.Stop()
		e.Use(ddEcho.Middleware(ddEcho.WithServiceName("hyperforge.go")))
	}

	logMw := transport.CreateLoggingMiddleware(logger)
	// strict rate limit for requests that submit generation tasks
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)

	secured := e.Group("", tokens.Middleware(c.JWTSecret), logMw)
	securedWithStrictRateLimit := e.Group("", tokens.Middleware(c.JWTSecret), strictRateLimitMiddleware, logMw)

	transport.RegisterV2Endpoints(svc, e, secured, securedWithStrictRateLimit, strictRateLimitMiddleware, tokens.AdminTokenMiddleware(c.AdminToken), logMw)

	//Swagger API spec
	docs.SwaggerInfo.Host = c.Host
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	var backgroundWg sync.WaitGroup
	backGroundCtx, _ := signal.NotifyContext(context.Background(), os.Interrupt)
	// Poll the mesh provider for inflight job updates in the background
	backgroundWg.Add(1)
	go func() {
		svc.StartJobPollerRoutine(backGroundCtx)
		svc.Logger.Info("Job poller routine done")
		backgroundWg.Done()
	}()

	//Start webhook subscription
	if svc.Config.WebhookUrl != "" {
		backgroundWg.Add(1)
		go func() {
			svc.StartWebhookSubscription(backGroundCtx)
			svc.Logger.Info("Webhook routine done")
			backgroundWg.Done()
		}()
	}
	//Start rabbit publisher
	if svc.RabbitMQClient != nil {
		backgroundWg.Add(1)
		go func() {
			err = svc.RabbitMQClient.StartPublishAssetEvents(backGroundCtx,
				svc.SubscribeAssetEvents,
				svc.EncodeAssetWithOwner,
			)
			if err != nil {
				svc.Logger.Error(err)
				sentry.CaptureException(err)
			}

			svc.Logger.Info("Rabbit asset publisher done")
			backgroundWg.Done()
		}()
	}

	//Start Prometheus server if necessary
	if svc.Config.EnablePrometheus {
		go transport.StartPrometheusEcho(logger, svc, e)
	}

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-backGroundCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	//Wait for graceful shutdown of background routines
	backgroundWg.Wait()
	svc.Logger.Info("HyperForge exiting gracefully. Goodbye.")
}
