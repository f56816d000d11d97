package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/ininahazwe/mfwa-memorial/model"
)

// MongoProvider is the identity service backed by the users and
// sessions collections. The JWT carried by the client is only a
// session handle; validity is decided by the session document, so a
// deleted document revokes the login immediately.
type MongoProvider struct {
	users    *mongo.Collection
	sessions *mongo.Collection
	secret   []byte
	ttl      time.Duration
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	UserID    string `json:"uid"`
	jwt.RegisteredClaims
}

func NewMongoProvider(db *mongo.Database, secret string, ttl time.Duration) *MongoProvider {
	p := &MongoProvider{
		users:    db.Collection("users"),
		sessions: db.Collection("sessions"),
		secret:   []byte(secret),
		ttl:      ttl,
	}

	// Expired sessions are already invalid (Current checks expiresAt);
	// the TTL index keeps the collection from growing without bound.
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	if _, err := p.sessions.Indexes().CreateOne(context.Background(), index); err != nil {
		log.Printf("[WARN] failed to create session TTL index: %v", err)
	}

	return p
}

// Verify checks the credential pair and opens a session document on
// success. A missing user and a wrong password both map to
// ErrBadCredentials so the caller cannot tell whether the email exists.
func (p *MongoProvider) Verify(ctx context.Context, email, password string) (*model.Identity, string, error) {
	var user model.AdminUser
	err := p.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", ErrBadCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("user lookup: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrBadCredentials
	}

	now := time.Now()
	session := model.Session{
		UserID:    user.ID.Hex(),
		CreatedAt: now,
		ExpiresAt: now.Add(p.ttl),
	}
	res, err := p.sessions.InsertOne(ctx, session)
	if err != nil {
		return nil, "", fmt.Errorf("session create: %w", err)
	}
	sessionID := res.InsertedID.(primitive.ObjectID)

	token, err := p.signToken(sessionID.Hex(), user.ID.Hex(), session.ExpiresAt)
	if err != nil {
		// Token signing failed after the session was written; remove
		// it again so no orphan session stays live.
		if _, delErr := p.sessions.DeleteOne(ctx, bson.M{"_id": sessionID}); delErr != nil {
			log.Printf("[ERROR] failed to remove orphan session %s: %v", sessionID.Hex(), delErr)
		}
		return nil, "", fmt.Errorf("token sign: %w", err)
	}

	return &model.Identity{
		UserID:      user.ID.Hex(),
		SessionID:   sessionID.Hex(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	}, token, nil
}

func (p *MongoProvider) signToken(sessionID, userID string, expiresAt time.Time) (string, error) {
	claims := &sessionClaims{
		SessionID: sessionID,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func (p *MongoProvider) parseToken(token string) (*sessionClaims, bool) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, false
	}
	return claims, true
}

// Current resolves the token to a live identity, nil when the token is
// absent, malformed, expired, or its session document is gone.
func (p *MongoProvider) Current(ctx context.Context, token string) *model.Identity {
	if token == "" {
		return nil
	}
	claims, ok := p.parseToken(token)
	if !ok {
		return nil
	}

	sessionID, err := primitive.ObjectIDFromHex(claims.SessionID)
	if err != nil {
		return nil
	}

	var session model.Session
	err = p.sessions.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&session)
	if err != nil || time.Now().After(session.ExpiresAt) {
		return nil
	}

	userID, err := primitive.ObjectIDFromHex(session.UserID)
	if err != nil {
		return nil
	}
	var user model.AdminUser
	if err := p.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return nil
	}

	return &model.Identity{
		UserID:      user.ID.Hex(),
		SessionID:   claims.SessionID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	}
}

// Watch delivers the current identity for token asynchronously. The
// returned channel is buffered and receives exactly one value; the
// cancel func stops delivery if the subscriber gives up first and must
// always be called to release the subscription.
func (p *MongoProvider) Watch(token string) (<-chan *model.Identity, func()) {
	ch := make(chan *model.Identity, 1)
	done := make(chan struct{})
	var once sync.Once
	cancel := func() { once.Do(func() { close(done) }) }

	go func() {
		ctx, ctxCancel := context.WithCancel(context.Background())
		defer ctxCancel()
		go func() {
			<-done
			ctxCancel()
		}()

		ident := p.Current(ctx, token)
		select {
		case ch <- ident:
		case <-done:
		}
	}()

	return ch, cancel
}

// SignOut deletes the session document behind token. An already
// invalid token is a no-op, not an error.
func (p *MongoProvider) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, ok := p.parseToken(token)
	if !ok {
		return nil
	}
	sessionID, err := primitive.ObjectIDFromHex(claims.SessionID)
	if err != nil {
		return nil
	}
	if _, err := p.sessions.DeleteOne(ctx, bson.M{"_id": sessionID}); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
