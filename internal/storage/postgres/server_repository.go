package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/darkbyte-host/storefront/internal/domain/errors"
	"github.com/darkbyte-host/storefront/internal/domain/model"
)

const serverColumns = `id, user_id, product_id, order_item_id, panel_id, panel_identifier, external_ref, name, status, expires_at, created_at`

func (r *serverRepository) Create(ctx context.Context, server model.Server) (*model.Server, error) {
	const query = `INSERT INTO servers (user_id, product_id, order_item_id, panel_id, panel_identifier, external_ref, name, status, expires_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING id, created_at`
	created := server
	err := r.storage.pool.QueryRow(ctx, query,
		server.UserID, server.ProductID, server.OrderItemID,
		server.PanelID, server.PanelIdentifier, server.ExternalRef,
		server.Name, server.Status, server.ExpiresAt,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *serverRepository) GetByID(ctx context.Context, id int64) (*model.Server, error) {
	const query = `SELECT ` + serverColumns + ` FROM servers WHERE id=$1`
	server, err := scanServer(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return server, nil
}

func (r *serverRepository) ListByUser(ctx context.Context, userID int64) ([]model.Server, error) {
	const query = `SELECT ` + serverColumns + ` FROM servers WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *serverRepository) ProvisionedItemIDs(ctx context.Context, itemIDs []int64) (map[int64]struct{}, error) {
	const query = `SELECT order_item_id FROM servers WHERE order_item_id = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	provisioned := make(map[int64]struct{}, len(itemIDs))
	for rows.Next() {
		var itemID int64
		if err := rows.Scan(&itemID); err != nil {
			return nil, err
		}
		provisioned[itemID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return provisioned, nil
}

func (r *serverRepository) UpdateStatus(ctx context.Context, id int64, status model.ServerStatus) error {
	const query = `UPDATE servers SET status=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *serverRepository) ListExpirable(ctx context.Context, now time.Time, limit int) ([]model.Server, error) {
	const query = `SELECT ` + serverColumns + ` FROM servers
                   WHERE status=$1 AND expires_at < $2
                   ORDER BY expires_at
                   LIMIT $3`
	return r.list(ctx, query, model.ServerStatusActive, now, limit)
}

func (r *serverRepository) list(ctx context.Context, query string, args ...any) ([]model.Server, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var servers []model.Server
	for rows.Next() {
		server, err := scanServer(rows)
		if err != nil {
			return nil, err
		}
		servers = append(servers, *server)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return servers, nil
}

func scanServer(row rowScanner) (*model.Server, error) {
	var server model.Server
	err := row.Scan(
		&server.ID, &server.UserID, &server.ProductID, &server.OrderItemID,
		&server.PanelID, &server.PanelIdentifier, &server.ExternalRef,
		&server.Name, &server.Status, &server.ExpiresAt, &server.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &server, nil
}
