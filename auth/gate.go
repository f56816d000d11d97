package auth

import (
	"context"
	"errors"
	"log"

	"github.com/ininahazwe/mfwa-memorial/model"
)

const RoleAdmin = "admin"

// ErrBadCredentials is returned by IdentityProvider.Verify when the
// email/password pair does not verify. It deliberately carries no
// detail about whether the email exists.
var ErrBadCredentials = errors.New("incorrect email or password")

// Status is the outcome of a gate decision.
type Status int

const (
	StatusUnauthenticated Status = iota
	StatusAuthenticated
	StatusDenied
)

// Result is the tagged outcome consumed by the UI shell. Every code
// path through the gate resolves to one of the three statuses; the
// gate never signals by panic or raw error.
type Result struct {
	Status     Status
	RedirectTo string
	Reason     string
	// Token is the session handle, set only on successful login.
	Token string
}

// IdentityProvider verifies credentials and manages session state.
// The concrete implementation lives in provider.go; tests substitute
// fakes.
type IdentityProvider interface {
	// Verify checks the credential pair and opens a session on
	// success. Failures return ErrBadCredentials; anything else is a
	// service error.
	Verify(ctx context.Context, email, password string) (*model.Identity, string, error)
	// Watch delivers the identity behind token asynchronously. The
	// channel receives at least one value (nil when there is no live
	// session); the cancel func releases the subscription.
	Watch(token string) (<-chan *model.Identity, func())
	// Current is the synchronous convenience lookup, nil when the
	// token resolves to no live session.
	Current(ctx context.Context, token string) *model.Identity
	// SignOut revokes the session behind token.
	SignOut(ctx context.Context, token string) error
}

// RoleStore looks up admin role records keyed by user id.
type RoleStore interface {
	Lookup(ctx context.Context, userID string) (*model.AdminRecord, error)
}

// Gate decides whether a credential or session is authenticated AND
// authorized. Verification and authorization are separate phases: a
// verified identity without the admin role never keeps a live session.
type Gate struct {
	provider IdentityProvider
	roles    RoleStore
}

func NewGate(provider IdentityProvider, roles RoleStore) *Gate {
	return &Gate{provider: provider, roles: roles}
}

func (g *Gate) isAdmin(ctx context.Context, userID string) bool {
	rec, err := g.roles.Lookup(ctx, userID)
	if err != nil {
		log.Printf("[WARN] admin role lookup failed for user=%s: %v", userID, err)
		return false
	}
	return rec != nil && rec.Role == RoleAdmin
}

// Login verifies the credential pair, then checks the admin role. A
// role mismatch revokes the session opened by verification before the
// result is returned.
func (g *Gate) Login(ctx context.Context, email, password string) Result {
	ident, token, err := g.provider.Verify(ctx, email, password)
	if errors.Is(err, ErrBadCredentials) {
		return Result{Status: StatusUnauthenticated, Reason: ErrBadCredentials.Error()}
	}
	if err != nil {
		log.Printf("[ERROR] identity verification failed: %v", err)
		return Result{Status: StatusUnauthenticated, Reason: "connection error, please try again"}
	}

	if !g.isAdmin(ctx, ident.UserID) {
		if err := g.provider.SignOut(ctx, token); err != nil {
			log.Printf("[ERROR] failed to revoke session for non-admin user=%s: %v", ident.UserID, err)
		}
		return Result{Status: StatusDenied, Reason: "administrator rights required"}
	}

	return Result{Status: StatusAuthenticated, RedirectTo: "/", Token: token}
}

// Check resolves the current authorization for an ambient session
// token. It consumes exactly one identity notification per call: one
// subscription in, one value out, cancel immediately after. A provider
// that fires its channel more than once still resolves a single check
// exactly once.
func (g *Gate) Check(ctx context.Context, token string) Result {
	ch, cancel := g.provider.Watch(token)
	defer cancel()

	var ident *model.Identity
	select {
	case ident = <-ch:
	case <-ctx.Done():
		return Result{Status: StatusUnauthenticated, RedirectTo: "/login", Reason: "connection error, please try again"}
	}

	if ident == nil {
		return Result{Status: StatusUnauthenticated, RedirectTo: "/login"}
	}

	if !g.isAdmin(ctx, ident.UserID) {
		if err := g.provider.SignOut(ctx, token); err != nil {
			log.Printf("[ERROR] failed to revoke session for non-admin user=%s: %v", ident.UserID, err)
		}
		return Result{Status: StatusDenied, RedirectTo: "/login", Reason: "administrator rights required"}
	}

	return Result{Status: StatusAuthenticated}
}

// Logout revokes the session unconditionally.
func (g *Gate) Logout(ctx context.Context, token string) Result {
	if err := g.provider.SignOut(ctx, token); err != nil {
		log.Printf("[WARN] sign out failed: %v", err)
	}
	return Result{Status: StatusUnauthenticated, RedirectTo: "/login"}
}

// Identity returns display attributes for the current session, nil
// when there is none. No role check here; this is a read-only
// convenience, not a gate.
func (g *Gate) Identity(ctx context.Context, token string) *model.IdentitySummary {
	ident := g.provider.Current(ctx, token)
	if ident == nil {
		return nil
	}

	name := ident.DisplayName
	if name == "" {
		name = ident.Email
	}
	if name == "" {
		name = "Admin"
	}

	return &model.IdentitySummary{
		ID:     ident.UserID,
		Name:   name,
		Email:  ident.Email,
		Avatar: ident.AvatarURL,
	}
}

// Permissions returns {"admin"} when the current session passes the
// role lookup, else an empty set.
func (g *Gate) Permissions(ctx context.Context, token string) []string {
	ident := g.provider.Current(ctx, token)
	if ident == nil {
		return []string{}
	}
	if g.isAdmin(ctx, ident.UserID) {
		return []string{RoleAdmin}
	}
	return []string{}
}
