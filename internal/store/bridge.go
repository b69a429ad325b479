package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/dbx"
	"storefront/internal/logging"
	"storefront/internal/models"
)

const (
	cartRecordKey    = "cart_state"
	sessionRecordKey = "session"

	// cartSchemaVersion tags the persisted cart envelope so future shape
	// changes can be detected and migrated instead of guessed.
	cartSchemaVersion    = 1
	sessionSchemaVersion = 1
)

// ErrCorruptRecord marks a durable record that exists but cannot be decoded
// or carries an unknown schema version.
var ErrCorruptRecord = errors.New("corrupt record")

// cartEnvelope is the durable layout of the cart record.
type cartEnvelope struct {
	SchemaVersion int              `json:"schemaVersion"`
	Cart          models.CartState `json:"cart"`
}

// sessionEnvelope is the durable layout of the session record. ExpiresAt
// implements the session's own expiry policy, independent of the cart.
type sessionEnvelope struct {
	SchemaVersion int         `json:"schemaVersion"`
	User          models.User `json:"user"`
	ExpiresAt     time.Time   `json:"expiresAt"`
}

// Bridge persists cart and session state. Writes are synchronous from the
// caller's perspective; reads degrade to defaults instead of failing.
type Bridge struct {
	db   *sql.DB
	repo *RecordRepository
	log  logging.Logger
	now  func() time.Time
}

// NewBridge returns a Bridge over the given database.
func NewBridge(db *sql.DB, log logging.Logger) *Bridge {
	return &Bridge{db: db, repo: NewRecordRepository(db), log: log, now: time.Now}
}

// SaveCart serializes state and writes it under the cart record key. A write
// failure does not roll back the in-memory mutation; the caller logs or
// surfaces it and the in-memory state stays authoritative for the session.
func (b *Bridge) SaveCart(ctx context.Context, state models.CartState) error {
	env := cartEnvelope{SchemaVersion: cartSchemaVersion, Cart: state}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode cart state: %w", err)
	}
	return b.repo.Set(ctx, cartRecordKey, data)
}

// LoadCart rehydrates the cart from storage. An absent, unreadable, corrupt,
// or version-mismatched record yields the empty default cart; corruption is
// logged and self-heals on the next save.
func (b *Bridge) LoadCart(ctx context.Context) models.CartState {
	data, err := b.repo.Get(ctx, cartRecordKey)
	if err != nil {
		b.log.Warn(ctx, "cart record unreadable, starting empty", "error", err)
		return models.EmptyCart()
	}
	if data == nil {
		return models.EmptyCart()
	}

	var env cartEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		b.log.Warn(ctx, "cart record corrupt, starting empty",
			"error", fmt.Errorf("%w: %v", ErrCorruptRecord, err))
		return models.EmptyCart()
	}
	if env.SchemaVersion != cartSchemaVersion {
		b.log.Warn(ctx, "cart record has unknown schema version, starting empty",
			"version", env.SchemaVersion)
		return models.EmptyCart()
	}

	if env.Cart.Items == nil {
		env.Cart.Items = []models.CartItem{}
	}
	return env.Cart
}

// SaveSession persists the auth session with its expiry stamp.
func (b *Bridge) SaveSession(ctx context.Context, user models.User, expiresAt time.Time) error {
	env := sessionEnvelope{SchemaVersion: sessionSchemaVersion, User: user, ExpiresAt: expiresAt}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return b.repo.Set(ctx, sessionRecordKey, data)
}

// LoadSession rehydrates the persisted session. It reports false when the
// record is absent, corrupt, or past its expiry. The read and the removal of
// an expired record run in one transaction so a concurrent save cannot be
// deleted by mistake.
func (b *Bridge) LoadSession(ctx context.Context) (models.User, bool) {
	var user models.User
	var ok bool

	err := dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewRecordRepository(tx)

		data, err := repo.Get(ctx, sessionRecordKey)
		if err != nil {
			return err
		}
		if data == nil {
			return nil
		}

		var env sessionEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			b.log.Warn(ctx, "session record corrupt, discarding",
				"error", fmt.Errorf("%w: %v", ErrCorruptRecord, err))
			return nil
		}
		if env.SchemaVersion != sessionSchemaVersion {
			b.log.Warn(ctx, "session record has unknown schema version, discarding",
				"version", env.SchemaVersion)
			return nil
		}
		if !env.ExpiresAt.IsZero() && b.now().After(env.ExpiresAt) {
			b.log.Info(ctx, "persisted session expired, discarding", "expiredAt", env.ExpiresAt)
			return repo.Delete(ctx, sessionRecordKey)
		}

		user, ok = env.User, true
		return nil
	})
	if err != nil {
		b.log.Warn(ctx, "session record unreadable", "error", err)
		return models.User{}, false
	}
	return user, ok
}

// ClearSession removes the persisted session record.
func (b *Bridge) ClearSession(ctx context.Context) error {
	return b.repo.Delete(ctx, sessionRecordKey)
}
