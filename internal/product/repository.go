package product

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Repository issues exactly one statement per call. Store errors are returned
// as-is so callers see the driver's own message.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, in Input) (int64, error)
	Get(ctx context.Context, id uint32) (Product, error)
	Update(ctx context.Context, id uint32, in Input) (int64, error)
	Delete(ctx context.Context, id uint32) (int64, error)
}

const (
	listSQL   = `SELECT id_product, name, qty, price, description FROM product ORDER BY name`
	insertSQL = `INSERT INTO product(name, qty, price, description) VALUES($1, $2, $3, $4) RETURNING id_product`
	getSQL    = `SELECT id_product, name, qty, price, description FROM product WHERE id_product = $1`
	updateSQL = `UPDATE product SET name = $1, qty = $2, price = $3, description = $4 WHERE id_product = $5`
	deleteSQL = `DELETE FROM product WHERE id_product = $1`
)

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, listSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.Description); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// Create returns the store-assigned id.
func (r *PostgresRepository) Create(ctx context.Context, in Input) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, insertSQL, in.Name, in.Quantity, in.Price, in.Description).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Get returns pgx.ErrNoRows when no product has the id.
func (r *PostgresRepository) Get(ctx context.Context, id uint32) (Product, error) {
	var p Product
	row := r.pool.QueryRow(ctx, getSQL, int64(id))
	if err := row.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.Description); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Update overwrites all writable fields and reports how many rows matched.
func (r *PostgresRepository) Update(ctx context.Context, id uint32, in Input) (int64, error) {
	tag, err := r.pool.Exec(ctx, updateSQL, in.Name, in.Quantity, in.Price, in.Description, int64(id))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uint32) (int64, error) {
	tag, err := r.pool.Exec(ctx, deleteSQL, int64(id))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
