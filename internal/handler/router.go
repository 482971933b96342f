package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/knrbokhari/warehouse-management-server-side/internal/metrics"
	"github.com/knrbokhari/warehouse-management-server-side/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	StatusRecorder    middleware.StatusRecorder
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// サービス
	LoginService     LoginServiceInterface
	InventoryService InventoryServiceInterface
	CatalogService   CatalogServiceInterface

	// 運用エンドポイント
	DB              Pinger
	MetricsGatherer prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Logging → Recovery
//
// 認証（Bearerトークン検証）とレート制限は所有者スコープの一覧ルートにのみ適用する。
// それ以外の在庫CRUDとカタログは無認証で公開される。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.StatusRecorder))
	r.Use(middleware.NewRecoveryMiddleware())

	loginHandler := NewLoginHandler(deps.LoginService)
	productHandler := NewProductHandler(deps.InventoryService)
	serviceHandler := NewServiceHandler(deps.CatalogService)
	healthHandler := NewHealthHandler(deps.DB)

	// 稼働確認
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Server Running"))
	})
	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", metrics.Handler(deps.MetricsGatherer))

	// トークン発行
	r.Post("/login", loginHandler.Login)

	// 在庫レコード
	r.Route("/product", func(r chi.Router) {
		// GET /product?email=xxx のみ認証・レート制限つき
		r.With(
			middleware.NewAuthMiddleware(deps.TokenVerifier),
			deps.RateLimiter.Middleware(),
		).Get("/", productHandler.ListOwned)

		r.Post("/", productHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", productHandler.Get)
			r.Put("/", productHandler.Update)
			r.Delete("/", productHandler.Delete)
		})
	})

	// 公開カタログ
	r.Get("/service", serviceHandler.ListAll)

	return r
}
