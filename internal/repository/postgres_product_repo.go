package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/knrbokhari/warehouse-management-server-side/internal/model"
)

// PostgresProductRepo はPostgreSQLを使用した在庫リポジトリ。
type PostgresProductRepo struct {
	db *sql.DB
}

// NewPostgresProductRepo はPostgresProductRepoを生成する。
func NewPostgresProductRepo(db *sql.DB) *PostgresProductRepo {
	return &PostgresProductRepo{db: db}
}

const productColumns = `id, owner_email, quantity, price, description, sold, created_at, updated_at`

// scanProduct は1行をmodel.Productに読み込む。
func scanProduct(row interface{ Scan(...any) error }) (*model.Product, error) {
	p := &model.Product{}
	err := row.Scan(
		&p.ID, &p.OwnerEmail, &p.Quantity, &p.Price,
		&p.Description, &p.Sold, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID は指定IDのレコードを取得する。見つからない場合はnilを返す。
func (r *PostgresProductRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id,
	)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("在庫レコードの取得に失敗しました: %w", err)
	}

	return p, nil
}

// ListByOwner はowner_emailが一致する全レコードを返す。
func (r *PostgresProductRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]*model.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE owner_email = $1 ORDER BY created_at`,
		ownerEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("在庫一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	products := []*model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("在庫レコードの読み込みに失敗しました: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("在庫一覧の走査に失敗しました: %w", err)
	}

	return products, nil
}

// Create は新規レコードを作成し、採番したIDをproductに書き戻す。
func (r *PostgresProductRepo) Create(ctx context.Context, product *model.Product) error {
	now := time.Now().UTC()
	product.ID = uuid.New().String()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, owner_email, quantity, price, description, sold, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		product.ID, product.OwnerEmail, product.Quantity, product.Price,
		product.Description, product.Sold, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("在庫レコードの作成に失敗しました: %w", err)
	}

	return nil
}

// Upsert は指定IDのレコードに部分更新を適用する。
// ON CONFLICTで挿入と更新を1文にまとめ、同一IDへの同時更新は
// ストア層のlast-write-winsで解決する。
// 更新時はパッチの非nilフィールドのみ上書きし、owner_emailとid、
// created_atには一切触れない。
func (r *PostgresProductRepo) Upsert(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	now := time.Now().UTC()

	// 挿入時の初期値。nilフィールドはゼロ値で初期化する。
	ins := model.Product{ID: id, CreatedAt: now, UpdatedAt: now}
	if patch.Quantity != nil {
		ins.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		ins.Price = *patch.Price
	}
	if patch.Description != nil {
		ins.Description = *patch.Description
	}
	if patch.Sold != nil {
		ins.Sold = *patch.Sold
	}

	// 更新時はパッチで指定されたカラムのみEXCLUDED側の値を採用する。
	// 指定のないカラム（およびowner_email, created_at）は既存値を保持する。
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO products (id, owner_email, quantity, price, description, sold, created_at, updated_at)
		 VALUES ($1, '', $2, $3, $4, $5, $6, $6)
		 ON CONFLICT (id) DO UPDATE SET
		     quantity    = CASE WHEN $7 THEN EXCLUDED.quantity    ELSE products.quantity    END,
		     price       = CASE WHEN $8 THEN EXCLUDED.price       ELSE products.price       END,
		     description = CASE WHEN $9 THEN EXCLUDED.description ELSE products.description END,
		     sold        = CASE WHEN $10 THEN EXCLUDED.sold       ELSE products.sold        END,
		     updated_at  = EXCLUDED.updated_at
		 RETURNING `+productColumns,
		ins.ID, ins.Quantity, ins.Price, ins.Description, ins.Sold, now,
		patch.Quantity != nil, patch.Price != nil, patch.Description != nil, patch.Sold != nil,
	)

	p, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("在庫レコードのupsertに失敗しました: %w", err)
	}

	return p, nil
}

// DeleteByID は指定IDのレコードを削除し、削除した行数を返す。
func (r *PostgresProductRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("在庫レコードの削除に失敗しました: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除行数の取得に失敗しました: %w", err)
	}

	return deleted, nil
}
