package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/knrbokhari/warehouse-management-server-side/internal/model"
)

// PostgresServiceOfferingRepo はPostgreSQLを使用した公開カタログリポジトリ。
type PostgresServiceOfferingRepo struct {
	db *sql.DB
}

// NewPostgresServiceOfferingRepo はPostgresServiceOfferingRepoを生成する。
func NewPostgresServiceOfferingRepo(db *sql.DB) *PostgresServiceOfferingRepo {
	return &PostgresServiceOfferingRepo{db: db}
}

// ListAll は全サービスを返す。
func (r *PostgresServiceOfferingRepo) ListAll(ctx context.Context) ([]*model.ServiceOffering, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, price, created_at FROM service_offerings ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("サービス一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	offerings := []*model.ServiceOffering{}
	for rows.Next() {
		o := &model.ServiceOffering{}
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.Price, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("サービスレコードの読み込みに失敗しました: %w", err)
		}
		offerings = append(offerings, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("サービス一覧の走査に失敗しました: %w", err)
	}

	return offerings, nil
}
