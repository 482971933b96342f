package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/knrbokhari/warehouse-management-server-side/internal/model"
)

// CatalogServiceInterface はカタログハンドラーが必要とするサービスインターフェース。
type CatalogServiceInterface interface {
	// ListAll は公開カタログの全サービスを返す。
	ListAll(ctx context.Context) ([]*model.ServiceOffering, error)
}

// ServiceHandler は公開カタログのHTTPハンドラー。
type ServiceHandler struct {
	service CatalogServiceInterface
}

// NewServiceHandler はServiceHandlerを生成する。
func NewServiceHandler(service CatalogServiceInterface) *ServiceHandler {
	return &ServiceHandler{service: service}
}

// serviceOfferingResponse はカタログのレスポンス。
type serviceOfferingResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListAll は公開カタログの全サービスを返す。認証は不要。
// GET /service
func (h *ServiceHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	offerings, err := h.service.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]serviceOfferingResponse, len(offerings))
	for i, o := range offerings {
		results[i] = serviceOfferingResponse{
			ID:          o.ID,
			Name:        o.Name,
			Description: o.Description,
			Price:       o.Price,
			CreatedAt:   o.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
