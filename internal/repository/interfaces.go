// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/knrbokhari/warehouse-management-server-side/internal/model"
)

// ProductRepository は在庫レコードの永続化インターフェース。
// レコードIDの採番はリポジトリ側が行う（呼び出し側はIDを渡さない）。
type ProductRepository interface {
	// FindByID は指定IDのレコードを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Product, error)

	// ListByOwner はowner_emailが一致する全レコードを返す。
	// ページネーションは行わず、一致集合をすべて返す。
	ListByOwner(ctx context.Context, ownerEmail string) ([]*model.Product, error)

	// Create は新規レコードを作成し、採番したIDをproductに書き戻す。
	Create(ctx context.Context, product *model.Product) error

	// Upsert は指定IDのレコードに部分更新を適用する。
	// 対象が存在しない場合はそのIDで新規作成する（パッチのnilフィールドは
	// ゼロ値で初期化）。存在する場合はパッチの非nilフィールドのみ上書きする。
	// owner_emailとidはこの経路では一切書き換えない。
	// 同一パッチの再適用は冪等。更新後のレコードを返す。
	Upsert(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error)

	// DeleteByID は指定IDのレコードを削除し、削除した行数を返す。
	DeleteByID(ctx context.Context, id string) (int64, error)
}

// ServiceOfferingRepository は公開カタログの永続化インターフェース。
type ServiceOfferingRepository interface {
	// ListAll は全サービスを返す。
	ListAll(ctx context.Context) ([]*model.ServiceOffering, error)
}
