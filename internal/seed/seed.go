package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type clientSeed struct {
	Nombre string
	Alias  string
}

type productSeed struct {
	Nombre     string
	UnidadBase string
}

// Apply inserts a starter catalog for manual testing. It is idempotent via
// ON CONFLICT on the natural name keys.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	clients := []clientSeed{
		{Nombre: "Abarrotes La Central", Alias: "Central"},
		{Nombre: "Tienda Dona Mary", Alias: "Mary"},
		{Nombre: "Mini Super El Paso", Alias: "El Paso"},
	}
	products := []productSeed{
		{Nombre: "Palomitas", UnidadBase: "50 gr"},
		{Nombre: "Cacahuates", UnidadBase: "Kg"},
		{Nombre: "Chicharrones", UnidadBase: "100 gr"},
		{Nombre: "Semillas", UnidadBase: "Medio"},
		{Nombre: "Duritos", UnidadBase: "bulto 5kg"},
	}

	for _, c := range clients {
		if err := upsertClient(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert cliente %s: %w", c.Nombre, err)
		}
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert producto %s: %w", p.Nombre, err)
		}
	}
	return nil
}

func upsertClient(ctx context.Context, pool *pgxpool.Pool, c clientSeed) error {
	const q = `
INSERT INTO clientes (nombre, alias)
SELECT $1, $2
WHERE NOT EXISTS (SELECT 1 FROM clientes WHERE nombre = $1)
`
	_, err := pool.Exec(ctx, q, c.Nombre, c.Alias)
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO productos (nombre, unidad_base)
SELECT $1, $2
WHERE NOT EXISTS (SELECT 1 FROM productos WHERE nombre = $1)
`
	_, err := pool.Exec(ctx, q, p.Nombre, p.UnidadBase)
	return err
}
