package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/data/pgxutil"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
	apperrors "github.com/cryptlocker/cryptlocker-ui-api/internal/errors"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
)

var _ ports.MirrorRepository = (*MirrorRepo)(nil)

// MirrorRepo copies wallet resources fetched from the backends into the local
// cache so dashboard counters can be served without a backend round trip.
type MirrorRepo struct {
	DB *sql.DB
}

// NewMirrorRepo creates a MirrorRepo.
func NewMirrorRepo(db *sql.DB) *MirrorRepo {
	return &MirrorRepo{DB: db}
}

const upsertCredentialSQL = `
	INSERT INTO credentials (credential_id, user_id, schema_id, cred_def_id, state, connection_id, attrs)
	VALUES ($1, $2, $3, NULLIF($4, ''), COALESCE(NULLIF($5, ''), 'issued'), NULLIF($6, ''), $7)
	ON CONFLICT (credential_id) DO UPDATE
	SET user_id = EXCLUDED.user_id,
		schema_id = EXCLUDED.schema_id,
		cred_def_id = EXCLUDED.cred_def_id,
		state = EXCLUDED.state,
		connection_id = EXCLUDED.connection_id,
		attrs = EXCLUDED.attrs`

const upsertConnectionSQL = `
	INSERT INTO connections (connection_id, user_id, their_label, their_did, my_did, state)
	VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), COALESCE(NULLIF($6, ''), 'pending'))
	ON CONFLICT (connection_id) DO UPDATE
	SET user_id = EXCLUDED.user_id,
		their_label = EXCLUDED.their_label,
		their_did = EXCLUDED.their_did,
		my_did = EXCLUDED.my_did,
		state = EXCLUDED.state`

const upsertOfferSQL = `
	INSERT INTO credential_offers (credential_exchange_id, user_id, connection_id, schema_id, state, attributes, issuer, comment)
	VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), COALESCE(NULLIF($5, ''), 'offer_sent'), $6, NULLIF($7, ''), NULLIF($8, ''))
	ON CONFLICT (credential_exchange_id) DO UPDATE
	SET user_id = EXCLUDED.user_id,
		connection_id = EXCLUDED.connection_id,
		schema_id = EXCLUDED.schema_id,
		state = EXCLUDED.state,
		attributes = EXCLUDED.attributes,
		issuer = EXCLUDED.issuer,
		comment = EXCLUDED.comment`

const upsertProofRequestSQL = `
	INSERT INTO proof_requests (presentation_exchange_id, user_id, connection_id, state,
		requested_attributes, requested_predicates, verified)
	VALUES ($1, $2, $3, COALESCE(NULLIF($4, ''), 'request_sent'), $5, $6, $7)
	ON CONFLICT (presentation_exchange_id) DO UPDATE
	SET user_id = EXCLUDED.user_id,
		connection_id = EXCLUDED.connection_id,
		state = EXCLUDED.state,
		requested_attributes = EXCLUDED.requested_attributes,
		requested_predicates = EXCLUDED.requested_predicates,
		verified = EXCLUDED.verified`

// UpsertCredentials mirrors credentials for the user. Rows without an id are skipped.
func (r *MirrorRepo) UpsertCredentials(ctx context.Context, userID int64, creds []model.Credential) error {
	batch := &pgx.Batch{}
	for _, c := range creds {
		if c.CredentialID == "" {
			continue
		}
		batch.Queue(upsertCredentialSQL,
			c.CredentialID, userID, c.SchemaID, c.CredDefID, c.State, c.ConnectionID, jsonOrNil(c.Attrs))
	}
	return r.sendBatch(ctx, userID, batch)
}

// UpsertConnections mirrors connections for the user.
func (r *MirrorRepo) UpsertConnections(ctx context.Context, userID int64, conns []model.Connection) error {
	batch := &pgx.Batch{}
	for _, c := range conns {
		if c.ConnectionID == "" {
			continue
		}
		batch.Queue(upsertConnectionSQL,
			c.ConnectionID, userID, c.TheirLabel, c.TheirDID, c.MyDID, c.State)
	}
	return r.sendBatch(ctx, userID, batch)
}

// UpsertOffers mirrors pending credential offers for the user.
func (r *MirrorRepo) UpsertOffers(ctx context.Context, userID int64, offers []model.CredentialOffer) error {
	batch := &pgx.Batch{}
	for _, o := range offers {
		if o.CredentialExchangeID == "" {
			continue
		}
		batch.Queue(upsertOfferSQL,
			o.CredentialExchangeID, userID, o.ConnectionID, o.SchemaID, o.State,
			jsonOrNil(o.Attributes), o.Issuer, o.Comment)
	}
	return r.sendBatch(ctx, userID, batch)
}

// UpsertProofRequests mirrors proof requests for the user.
func (r *MirrorRepo) UpsertProofRequests(ctx context.Context, userID int64, proofs []model.ProofRequest) error {
	batch := &pgx.Batch{}
	for _, p := range proofs {
		if p.PresentationExchangeID == "" {
			continue
		}
		verified := p.Verified != nil && *p.Verified
		batch.Queue(upsertProofRequestSQL,
			p.PresentationExchangeID, userID, p.ConnectionID, p.State,
			jsonOrNil(p.RequestedAttributes), jsonOrNil(p.RequestedPredicates), verified)
	}
	return r.sendBatch(ctx, userID, batch)
}

// Stats counts the user's mirrored credentials, active connections and open offers.
func (r *MirrorRepo) Stats(ctx context.Context, userID int64) (model.DashboardStats, error) {
	var s model.DashboardStats
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM credentials WHERE user_id = $1),
			(SELECT COUNT(*) FROM connections WHERE user_id = $1 AND state = 'active'),
			(SELECT COUNT(*) FROM credential_offers WHERE user_id = $1 AND state = 'offer_sent')
	`, userID).Scan(&s.CredentialsIssued, &s.ActiveConnections, &s.PendingOffers)
	if err != nil {
		return model.DashboardStats{}, fmt.Errorf("failed to compute stats: %w", err)
	}
	return s, nil
}

func (r *MirrorRepo) sendBatch(ctx context.Context, userID int64, batch *pgx.Batch) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	if batch.Len() == 0 {
		return nil
	}
	err := pgxutil.WithPgxTx(ctx, r.DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

// jsonOrNil encodes m for a JSONB column. Empty maps become NULL.
func jsonOrNil[M ~map[K]V, K comparable, V any](m M) []byte {
	if len(m) == 0 {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return b
}
