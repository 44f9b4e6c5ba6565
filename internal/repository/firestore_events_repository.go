package repository

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"MachiNavi-App/internal/domain/model"
	"MachiNavi-App/internal/domain/repository"
)

const eventsCollection = "events"

// FirestoreEventsRepository はFirestoreのeventsコレクションを読むリポジトリ
type FirestoreEventsRepository struct {
	client *firestore.Client
}

// NewFirestoreEventsRepository は新しいFirestoreEventsRepositoryインスタンスを作成
func NewFirestoreEventsRepository(client *firestore.Client) repository.EventsRepository {
	return &FirestoreEventsRepository{client: client}
}

// firestoreEventDoc は旧フィールド"date"を含むドキュメントの受け皿
// 初期データには startDate の代わりに date を持つレコードが残っている
type firestoreEventDoc struct {
	model.Event
	LegacyDate string `firestore:"date"`
}

// GetAll はイベントスナップショット全件を取得する
// 変換できないドキュメントはスキップして残りの処理を続ける
func (r *FirestoreEventsRepository) GetAll(ctx context.Context) ([]*model.Event, error) {
	iter := r.client.Collection(eventsCollection).Documents(ctx)
	defer iter.Stop()

	var events []*model.Event
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("イベントスナップショットの取得に失敗: %w", err)
		}

		var data firestoreEventDoc
		if err := doc.DataTo(&data); err != nil {
			log.Printf("⚠️ イベントドキュメントの変換に失敗 (id=%s): %v", doc.Ref.ID, err)
			continue
		}

		event := data.Event
		event.ID = doc.Ref.ID
		if event.StartDate == "" {
			event.StartDate = data.LegacyDate
		}
		events = append(events, &event)
	}

	return events, nil
}
