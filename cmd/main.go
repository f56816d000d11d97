package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ininahazwe/mfwa-memorial/api"
	"github.com/ininahazwe/mfwa-memorial/auth"
	"github.com/ininahazwe/mfwa-memorial/config"
	"github.com/ininahazwe/mfwa-memorial/events"
	"github.com/ininahazwe/mfwa-memorial/handler"
	"github.com/ininahazwe/mfwa-memorial/media"
	"github.com/ininahazwe/mfwa-memorial/metrics"
	"github.com/ininahazwe/mfwa-memorial/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, using environment")
	}

	cfg := config.Load()

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	if err := client.Ping(context.Background(), nil); err != nil {
		log.Fatal("MongoDB ping error:", err)
	}
	log.Println("Connected to MongoDB successfully")

	db := client.Database(cfg.Database)

	if err := auth.EnsureSeedAdmin(context.Background(), db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal("Admin seed error:", err)
	}

	publisher, err := events.Connect(cfg.NATSURL)
	if err != nil {
		log.Printf("[WARN] NATS connection failed, record change events disabled: %v", err)
	}
	defer publisher.Close()

	photos, err := media.NewGridFSStore(db, cfg.PublicBaseURL)
	if err != nil {
		log.Fatal("Photo store error:", err)
	}

	provider := auth.NewMongoProvider(db, cfg.JWTSecret, cfg.SessionTTL)
	gate := auth.NewGate(provider, auth.NewMongoRoleStore(db))
	records := store.New(db, publisher)

	metrics.Init("memorial-admin", "1.0", "production")

	log.Println("Starting the memorial admin service")
	api.StartServer(api.Deps{
		Auth:    handler.NewAuthHandler(gate, cfg.SessionTTL),
		Records: handler.NewRecordHandler(records),
		Photos:  handler.NewPhotoHandler(photos),
		Gate:    gate,
	}, cfg.Port)
}
