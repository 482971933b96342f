// Package inventory は在庫レコードの管理機能を提供する。
package inventory

import (
	"context"
	"time"

	"github.com/knrbokhari/warehouse-management-server-side/internal/metrics"
	"github.com/knrbokhari/warehouse-management-server-side/internal/model"
	"github.com/knrbokhari/warehouse-management-server-side/internal/repository"
	"github.com/knrbokhari/warehouse-management-server-side/internal/security"
)

// Service は在庫レコードの取得・作成・更新・削除のサービス。
type Service struct {
	productRepo repository.ProductRepository
	sanitizer   security.DescriptionSanitizer
	collector   metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	productRepo repository.ProductRepository,
	sanitizer security.DescriptionSanitizer,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		productRepo: productRepo,
		sanitizer:   sanitizer,
		collector:   collector,
	}
}

// ListOwned は要求されたownerEmailのレコード一覧を返す。
//
// 呼び出し側のクレームに含まれるemailと要求emailをバイト単位で比較し、
// 一致しない場合はストアへ一切アクセスせずに所有権エラーを返す。
// クレームにemailが無い場合も同様に拒否する（フェイルクローズ）。
// 大文字小文字の正規化やエイリアス展開は行わない。
func (s *Service) ListOwned(ctx context.Context, claim model.IdentityClaim, ownerEmail string) ([]*model.Product, error) {
	claimEmail := claim.Email()
	if claimEmail == "" || claimEmail != ownerEmail {
		s.collector.RecordAuthRejection("ownership_mismatch")
		return nil, model.NewOwnershipMismatchError()
	}

	start := time.Now()
	products, err := s.productRepo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	s.collector.RecordStoreLatency("list_by_owner", time.Since(start))
	s.collector.RecordRecordsReturned(len(products))

	return products, nil
}

// Get は指定IDのレコードを返す。見つからない場合はnilを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.Product, error) {
	start := time.Now()
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.collector.RecordStoreLatency("find_by_id", time.Since(start))

	return product, nil
}

// Create は新規レコードを作成する。descriptionはサニタイズしてから保存する。
// 採番されたIDはproductに書き戻される。
func (s *Service) Create(ctx context.Context, product *model.Product) error {
	product.Description = s.sanitizer.Sanitize(product.Description)

	start := time.Now()
	if err := s.productRepo.Create(ctx, product); err != nil {
		return err
	}
	s.collector.RecordStoreLatency("create", time.Since(start))

	return nil
}

// Update は指定IDのレコードにパッチを適用し、更新後のレコードを返す。
// 対象が存在しない場合はそのIDで新規作成する。
// パッチにdescriptionが含まれる場合はサニタイズしてから適用する。
func (s *Service) Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	if patch.Description != nil {
		sanitized := s.sanitizer.Sanitize(*patch.Description)
		patch.Description = &sanitized
	}

	start := time.Now()
	product, err := s.productRepo.Upsert(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.collector.RecordStoreLatency("upsert", time.Since(start))

	return product, nil
}

// Delete は指定IDのレコードを削除し、削除した行数を返す。
// 対象が存在しない場合は0を返す（エラーにはしない）。
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	start := time.Now()
	deleted, err := s.productRepo.DeleteByID(ctx, id)
	if err != nil {
		return 0, err
	}
	s.collector.RecordStoreLatency("delete", time.Since(start))

	return deleted, nil
}
