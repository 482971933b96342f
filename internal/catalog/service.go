// Package catalog は公開サービスカタログの提供機能を持つ。
package catalog

import (
	"context"
	"time"

	"github.com/knrbokhari/warehouse-management-server-side/internal/metrics"
	"github.com/knrbokhari/warehouse-management-server-side/internal/model"
	"github.com/knrbokhari/warehouse-management-server-side/internal/repository"
)

// Service は公開カタログの読み取りサービス。
// カタログは認証なしで誰でも参照できる。
type Service struct {
	offeringRepo repository.ServiceOfferingRepository
	collector    metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(offeringRepo repository.ServiceOfferingRepository, collector metrics.MetricsCollector) *Service {
	return &Service{
		offeringRepo: offeringRepo,
		collector:    collector,
	}
}

// ListAll は公開カタログの全サービスを返す。
func (s *Service) ListAll(ctx context.Context) ([]*model.ServiceOffering, error) {
	start := time.Now()
	offerings, err := s.offeringRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.collector.RecordStoreLatency("list_offerings", time.Since(start))
	s.collector.RecordRecordsReturned(len(offerings))

	return offerings, nil
}
