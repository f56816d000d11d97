package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminUser is a staff account in the "users" collection. Having an
// account does not grant admin access; that requires a matching role
// record in the "admins" collection.
type AdminUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	DisplayName  string             `bson:"displayName,omitempty" json:"displayName,omitempty"`
	AvatarURL    string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// AdminRecord is the access-control document in the "admins"
// collection, keyed by the user id it grants the role to.
type AdminRecord struct {
	UserID string `bson:"_id" json:"userId"`
	Role   string `bson:"role" json:"role"`
}

// Session is a live login in the "sessions" collection. A session is
// valid iff its document exists and has not expired; deleting the
// document revokes the login immediately.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"userId" json:"userId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
}

// Identity is what the session gate knows about a logged-in user.
type Identity struct {
	UserID      string
	SessionID   string
	Email       string
	DisplayName string
	AvatarURL   string
}

// IdentitySummary is the display shape returned to the admin UI.
type IdentitySummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}
