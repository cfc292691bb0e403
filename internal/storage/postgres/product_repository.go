package postgres

import (
	"context"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/darkbyte-host/storefront/internal/domain/model"
)

const productColumns = `id, name, description, price, currency, ram_mb, cpu_pct, disk_mb, duration_days, active`

func (r *productRepository) ListActive(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE active ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lo.KeyBy(result, func(p model.Product) int64 { return p.ID }), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (model.Product, error) {
	var (
		p      model.Product
		amount decimal.Decimal
		code   string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &amount, &code, &p.RAMMB, &p.CPUPercent, &p.DiskMB, &p.DurationDays, &p.Active); err != nil {
		return p, err
	}
	unit, err := parseCurrency(code)
	if err != nil {
		return p, err
	}
	p.Price = model.NewMoney(amount, unit)
	return p, nil
}
