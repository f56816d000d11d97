package auth

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/ininahazwe/mfwa-memorial/model"
)

// EnsureSeedAdmin creates the initial admin account when the users
// collection has no document for the configured email. A fresh
// deployment would otherwise have no way to log in. Existing accounts
// are never modified.
func EnsureSeedAdmin(ctx context.Context, db *mongo.Database, email, password string) error {
	if email == "" || password == "" {
		log.Println("[INFO] ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	users := db.Collection("users")
	err := users.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return fmt.Errorf("seed lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return fmt.Errorf("seed hash: %w", err)
	}

	user := model.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Admin",
		CreatedAt:    time.Now(),
	}
	res, err := users.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("seed user insert: %w", err)
	}
	userID := res.InsertedID.(primitive.ObjectID).Hex()

	rec := model.AdminRecord{UserID: userID, Role: RoleAdmin}
	if _, err := db.Collection("admins").InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("seed admin record insert: %w", err)
	}

	log.Printf("[INFO] Seeded admin account for %s", email)
	return nil
}
