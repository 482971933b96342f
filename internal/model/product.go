// Package model はドメインモデルを定義する。
package model

import "time"

// Product は倉庫の在庫レコードを表す。
// OwnerEmailは作成時に設定され、以後の部分更新では変更されない。
type Product struct {
	ID          string
	OwnerEmail  string
	Quantity    int
	Price       float64
	Description string // サニタイズ済みHTML
	Sold        bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch は在庫レコードの部分更新を表す。
// nilフィールドは変更しない。IDとOwnerEmailは更新経路に含めない。
type ProductPatch struct {
	Quantity    *int
	Price       *float64
	Description *string
	Sold        *bool
}
