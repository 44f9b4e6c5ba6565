package repository

import (
	"context"

	"MachiNavi-App/internal/domain/model"
)

// PlacesRepository はランドマーク（markers）の参照を提供する
// このコアからは読み取り専用
type PlacesRepository interface {
	GetByID(ctx context.Context, id string) (*model.Place, error)
	GetAll(ctx context.Context) ([]*model.Place, error)
}
