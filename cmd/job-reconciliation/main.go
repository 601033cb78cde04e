package main

import (
	"context"
	"fmt"
	"log"

	"github.com/hyperforge/hyperforge.go/db"
	"github.com/hyperforge/hyperforge.go/lib"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/hyperforge/hyperforge.go/meshy"
	"github.com/hyperforge/hyperforge.go/storage"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// script to reconcile inflight generation jobs against the mesh provider,
// for jobs the poller lost track of (crash, deploy)
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

	startupCtx := context.Background()

	// Init the mesh provider client
	meshCfg, err := meshy.LoadConfig()
	if err != nil {
		logger.Fatalf("Error loading mesh provider config: %v", err)
	}
	meshClient, err := meshy.InitMeshClient(meshCfg, logger, startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing the mesh provider connection: %v", err)
	}

	// Init the object storage client, finished jobs mirror their files
	storageCfg, err := storage.LoadConfig()
	if err != nil {
		logger.Fatalf("Error loading storage config: %v", err)
	}
	storageClient, err := storage.InitStorageClient(storageCfg, logger, startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing the storage connection: %v", err)
	}

	svc := &service.ForgeService{
		Config:        c,
		DB:            dbConn,
		MeshClient:    meshClient,
		MeshConfig:    meshCfg,
		StorageClient: storageClient,
		StorageConfig: storageCfg,
		Logger:        logger,
		AssetPubSub:   service.NewPubsub(),
	}

	svc.CheckAllInflightJobs(startupCtx)
}
