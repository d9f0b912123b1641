package sessionRepo

import (
	"context"

	"washline/database/table"
	"washline/models"
)

const (
	sessionPK    = "SESSION"
	tokenKeyPref = "TOKEN#"
	entityType   = "SESSION"
)

// SessionRepository persists session records keyed by token hash. The
// expiry instant doubles as the store's TTL attribute, so abandoned
// sessions are reaped automatically.
type SessionRepository interface {
	Put(ctx context.Context, session models.Session) error

	// GetByTokenHash returns the session for the hashed token, or
	// table.ErrItemNotFound.
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)

	DeleteByTokenHash(ctx context.Context, tokenHash string) error
}

type sessionRecord struct {
	PK             string `bson:"pk"`
	SK             string `bson:"sk"`
	EntityType     string `bson:"entityType"`
	models.Session `bson:",inline"`
}

type tableSessionRepo struct {
	tbl table.Table
}

// NewSessionRepo returns a SessionRepository backed by the table.
func NewSessionRepo(tbl table.Table) SessionRepository {
	return &tableSessionRepo{tbl: tbl}
}

func (r *tableSessionRepo) Put(ctx context.Context, session models.Session) error {
	return r.tbl.Put(ctx, sessionRecord{
		PK:         sessionPK,
		SK:         tokenKeyPref + session.TokenHash,
		EntityType: entityType,
		Session:    session,
	})
}

func (r *tableSessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	var record sessionRecord
	if err := r.tbl.Get(ctx, table.Key{PK: sessionPK, SK: tokenKeyPref + tokenHash}, &record); err != nil {
		return nil, err
	}
	return &record.Session, nil
}

func (r *tableSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return r.tbl.Delete(ctx, table.Key{PK: sessionPK, SK: tokenKeyPref + tokenHash})
}
