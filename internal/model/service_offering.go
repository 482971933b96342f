// Package model はドメインモデルを定義する。
package model

import "time"

// ServiceOffering は公開カタログに掲載するサービスを表す。
// 認証不要の読み取り専用コレクション。
type ServiceOffering struct {
	ID          string
	Name        string
	Description string
	Price       float64
	CreatedAt   time.Time
}
