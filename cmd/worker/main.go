package main

import (
	"context"
	"os"

	mobilestore "github.com/anagilda/the-mobile-store-REST-API"
)

var log = mobilestore.GetLogger("main")

func main() {
	ctx := context.Background()

	dbCfg, err := mobilestore.Config.Database()
	if err != nil {
		log.Errorf("Startup failed: %s", err.Error())
		os.Exit(1)
	}
	store, err := mobilestore.NewPostgresStore(ctx, dbCfg)
	if err != nil {
		log.Errorf("Unable to connect to the database: %s", err.Error())
		os.Exit(1)
	}
	defer store.Close(ctx)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Errorf("Unable to prepare catalog schema: %s", err.Error())
		os.Exit(1)
	}

	storageCfg, err := mobilestore.Config.Storage()
	if err != nil {
		log.Errorf("Startup failed: %s", err.Error())
		os.Exit(1)
	}
	imageOpts := []mobilestore.ImageStoreOption{}
	if storageCfg.Env == mobilestore.EnvProduction {
		uploader, err := mobilestore.NewBucketUploader(storageCfg)
		if err != nil {
			log.Errorf("Unable to build bucket uploader: %s", err.Error())
			os.Exit(1)
		}
		imageOpts = append(imageOpts, mobilestore.ImageStoreWithUploader(uploader))
	}
	imageStore := mobilestore.NewImageStore(storageCfg, imageOpts...)

	engine := mobilestore.NewIngestEngine(store, mobilestore.EngineWithImageStore(imageStore))
	mobilestore.ExecuteCmd(engine)
}
