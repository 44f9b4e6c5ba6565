package repository

import (
	"context"

	"MachiNavi-App/internal/domain/model"
)

// EventsRepository はイベントスナップショットの取得を提供する
type EventsRepository interface {
	GetAll(ctx context.Context) ([]*model.Event, error)
}
