package order

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pedidos/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
	// zone is the named time zone used to derive local calendar dates from
	// the stored UTC timestamps. One zone for every date filter.
	zone string
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger, zone string) Repository {
	return &postgresRepo{pool: pool, logger: logger, zone: zone}
}

func (r *postgresRepo) Create(ctx context.Context, clienteID int64, lines []LineInput) (int64, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var pedidoID int64
	err = tx.QueryRow(ctx, `
INSERT INTO pedidos (cliente_id, estado)
VALUES ($1, 'en proceso')
RETURNING id
`, clienteID).Scan(&pedidoID)
	if err != nil {
		return 0, err
	}

	for _, l := range lines {
		if _, err := tx.Exec(ctx, `
INSERT INTO detalle_pedido (pedido_id, producto_id, cantidad, unidad, sabor)
VALUES ($1, $2, $3, $4, $5)
`, pedidoID, l.ProductoID, l.Cantidad, l.Unidad, l.Sabor); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return pedidoID, nil
}

func (r *postgresRepo) Get(ctx context.Context, id int64) (*domain.Order, error) {
	const q = `
SELECT p.id, p.cliente_id, c.nombre, COALESCE(c.alias, ''), p.fecha, p.estado
FROM pedidos p
JOIN clientes c ON c.id = p.cliente_id
WHERE p.id = $1
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]domain.Order, error) {
	q := `
SELECT p.id, p.cliente_id, c.nombre, COALESCE(c.alias, ''), p.fecha, p.estado
FROM pedidos p
JOIN clientes c ON p.cliente_id = c.id
WHERE DATE(p.fecha AT TIME ZONE $1) BETWEEN $2::date AND $3::date
`
	args := []interface{}{r.zone, f.From.Format("2006-01-02"), f.To.Format("2006-01-02")}
	if f.ClienteID != nil {
		args = append(args, *f.ClienteID)
		q += fmt.Sprintf("AND p.cliente_id = $%d\n", len(args))
	}
	if f.Estado != nil {
		args = append(args, string(*f.Estado))
		q += fmt.Sprintf("AND p.estado = $%d\n", len(args))
	}
	q += "ORDER BY p.fecha, p.id"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *postgresRepo) LinesFor(ctx context.Context, ids []int64) (map[int64][]domain.OrderLine, error) {
	out := make(map[int64][]domain.OrderLine, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	const q = `
SELECT dp.pedido_id, dp.producto_id, pr.nombre, dp.cantidad, dp.unidad, COALESCE(dp.sabor, '')
FROM detalle_pedido dp
JOIN productos pr ON pr.id = dp.producto_id
WHERE dp.pedido_id = ANY($1)
ORDER BY dp.pedido_id, dp.id
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.PedidoID, &l.ProductoID, &l.ProductoNombre, &l.Cantidad, &l.Unidad, &l.Sabor); err != nil {
			return nil, err
		}
		out[l.PedidoID] = append(out[l.PedidoID], l)
	}
	return out, rows.Err()
}

func (r *postgresRepo) SetStatus(ctx context.Context, id int64, estado domain.Status) error {
	if !estado.Valid() {
		return domain.ErrInvalidStatus
	}
	cmd, err := r.pool.Exec(ctx, `UPDATE pedidos SET estado = $1 WHERE id = $2`, string(estado), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) RepairInvalidStatuses(ctx context.Context) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `
UPDATE pedidos
SET estado = 'en proceso'
WHERE estado IS NULL
   OR btrim(estado) = ''
   OR estado NOT IN ('en proceso', 'listo', 'cancelado')
`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var rawEstado *string
	if err := row.Scan(&o.ID, &o.ClienteID, &o.ClienteNombre, &o.ClienteAlias, &o.Fecha, &rawEstado); err != nil {
		return nil, err
	}
	// Stored statuses may predate the repair pass; never surface a raw
	// invalid value.
	o.Estado = domain.NormalizeStatus(rawEstado)
	return &o, nil
}
