package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/knrbokhari/warehouse-management-server-side/internal/middleware"
	"github.com/knrbokhari/warehouse-management-server-side/internal/model"
)

// InventoryServiceInterface は在庫ハンドラーが必要とするサービスインターフェース。
type InventoryServiceInterface interface {
	// ListOwned は所有権検証つきでownerEmailのレコード一覧を返す。
	ListOwned(ctx context.Context, claim model.IdentityClaim, ownerEmail string) ([]*model.Product, error)
	// Get は指定IDのレコードを返す。見つからない場合はnil。
	Get(ctx context.Context, id string) (*model.Product, error)
	// Create は新規レコードを作成し、採番したIDをproductに書き戻す。
	Create(ctx context.Context, product *model.Product) error
	// Update は指定IDへパッチを適用し、更新後のレコードを返す。
	Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error)
	// Delete は指定IDのレコードを削除し、削除した行数を返す。
	Delete(ctx context.Context, id string) (int64, error)
}

// ProductHandler は在庫レコードのHTTPハンドラー。
type ProductHandler struct {
	service InventoryServiceInterface
}

// NewProductHandler はProductHandlerを生成する。
func NewProductHandler(service InventoryServiceInterface) *ProductHandler {
	return &ProductHandler{service: service}
}

// --- リクエスト・レスポンス型 ---

// productResponse は在庫レコードのレスポンス。
type productResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Sold        bool      `json:"sold"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toProductResponse(p *model.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Email:       p.OwnerEmail,
		Quantity:    p.Quantity,
		Price:       p.Price,
		Description: p.Description,
		Sold:        p.Sold,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// createProductRequest はレコード作成リクエストのボディ。
type createProductRequest struct {
	Email       string  `json:"email"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Sold        bool    `json:"sold"`
}

// updateProductRequest は部分更新リクエストのボディ。
// 4つの可変フィールドのみ受け付ける。idとemailはこの経路では変更できない。
type updateProductRequest struct {
	Quantity    *int     `json:"quantity,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	Sold        *bool    `json:"sold,omitempty"`
}

// insertAckResponse は作成の確認応答。
type insertAckResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// updateAckResponse は更新の確認応答。
type updateAckResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	UpsertedID   string `json:"upsertedId"`
}

// deleteAckResponse は削除の確認応答。
type deleteAckResponse struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// ListOwned は所有者スコープのレコード一覧を取得する。
// GET /product?email=xxx （要認証）
func (h *ProductHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	claim, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewMissingCredentialError())
		return
	}

	ownerEmail := r.URL.Query().Get("email")

	products, err := h.service.ListOwned(r.Context(), claim, ownerEmail)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]productResponse, len(products))
	for i, p := range products {
		results[i] = toProductResponse(p)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

// Get はIDでレコードを取得する。見つからない場合はJSONのnullを返す。
// GET /product/:id
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if product == nil {
		w.Write([]byte("null\n"))
		return
	}
	json.NewEncoder(w).Encode(toProductResponse(product))
}

// Create は新規レコードを作成し、採番したIDを含む確認応答を返す。
// POST /product
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidBodyError())
		return
	}

	product := &model.Product{
		OwnerEmail:  req.Email,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Description: req.Description,
		Sold:        req.Sold,
	}
	if err := h.service.Create(r.Context(), product); err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(insertAckResponse{
		Acknowledged: true,
		InsertedID:   product.ID,
	})
}

// Update は4つの可変フィールドの部分更新を適用する。対象が無い場合は
// そのIDで新規作成する（アップサート）。
// PUT /product/:id
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidBodyError())
		return
	}

	patch := model.ProductPatch{
		Quantity:    req.Quantity,
		Price:       req.Price,
		Description: req.Description,
		Sold:        req.Sold,
	}
	product, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updateAckResponse{
		Acknowledged: true,
		UpsertedID:   product.ID,
	})
}

// Delete はIDでレコードを削除し、削除行数を含む確認応答を返す。
// DELETE /product/:id
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(deleteAckResponse{
		Acknowledged: true,
		DeletedCount: deleted,
	})
}
