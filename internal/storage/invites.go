package storage

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/claude/trainup/internal/models"
	"github.com/google/uuid"
)

// InviteTTL is how long a generated invite code stays redeemable.
const InviteTTL = 7 * 24 * time.Hour

// CreateInvite generates a fresh one-time invite code owned by userID.
// Codes are six digits; collisions with live codes are retried.
func (db *DB) CreateInvite(ctx context.Context, userID uuid.UUID) (*models.Invite, error) {
	for attempt := 0; attempt < 5; attempt++ {
		n, err := rand.Int(rand.Reader, big.NewInt(900000))
		if err != nil {
			return nil, fmt.Errorf("generating invite code: %w", err)
		}
		inv := models.Invite{
			ID:        uuid.New(),
			Code:      int(n.Int64()) + 100000,
			CreatedAt: time.Now().UTC(),
			UserID:    userID,
		}
		inv.ExpiresAt = inv.CreatedAt.Add(InviteTTL)

		_, err = db.Pool.Exec(ctx,
			`INSERT INTO invites (id, code, created_at, expires_at, user_id)
			 VALUES ($1, $2, $3, $4, $5)`,
			inv.ID, inv.Code, inv.CreatedAt, inv.ExpiresAt, inv.UserID)
		if isUniqueViolation(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("inserting invite: %w", err)
		}
		return &inv, nil
	}
	return nil, fmt.Errorf("generating invite code: exhausted retries")
}

// ConsumeInvite redeems an invite code. Returns ErrNotFound when the code
// does not exist, is expired, or was already used.
func (db *DB) ConsumeInvite(ctx context.Context, code int) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE invites SET used_at = NOW()
		 WHERE code = $1 AND used_at IS NULL AND expires_at > NOW()`,
		code)
	if err != nil {
		return fmt.Errorf("consuming invite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
