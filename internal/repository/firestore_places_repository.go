package repository

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"MachiNavi-App/internal/domain/model"
	"MachiNavi-App/internal/domain/repository"
)

const placesCollection = "markers"

// FirestorePlacesRepository はFirestoreのmarkersコレクションを読むリポジトリ
// コレクションの型付けが緩いため（緯度経度が文字列または数値、
// accessibleRestroomがboolまたは"true"）、フィールドごとに正規化する
type FirestorePlacesRepository struct {
	client *firestore.Client
}

// NewFirestorePlacesRepository は新しいFirestorePlacesRepositoryインスタンスを作成
func NewFirestorePlacesRepository(client *firestore.Client) repository.PlacesRepository {
	return &FirestorePlacesRepository{client: client}
}

// GetByID は指定IDのランドマークを1件取得する
func (r *FirestorePlacesRepository) GetByID(ctx context.Context, id string) (*model.Place, error) {
	doc, err := r.client.Collection(placesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("ランドマーク %s の取得に失敗: %w", id, err)
	}
	return placeFromData(doc.Ref.ID, doc.Data()), nil
}

// GetAll はランドマーク全件を取得する
func (r *FirestorePlacesRepository) GetAll(ctx context.Context) ([]*model.Place, error) {
	iter := r.client.Collection(placesCollection).Documents(ctx)
	defer iter.Stop()

	var places []*model.Place
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ランドマーク一覧の取得に失敗: %w", err)
		}
		places = append(places, placeFromData(doc.Ref.ID, doc.Data()))
	}

	return places, nil
}

// placeFromData は緩く型付けされたドキュメントをPlaceに正規化する
func placeFromData(id string, data map[string]interface{}) *model.Place {
	place := &model.Place{
		ID:                 id,
		Name:               asString(data["name"]),
		Latitude:           asString(data["latitude"]),
		Longitude:          asString(data["longitude"]),
		Address:            asString(data["address"]),
		Category:           asString(data["category"]),
		CategoryOption:     asString(data["categoryOption"]),
		AccessibleRestroom: asBool(data["accessibleRestroom"]),
	}
	if place.Latitude == "" || place.Longitude == "" {
		log.Printf("⚠️ 座標のないランドマーク (id=%s)", id)
	}
	return place
}

func asString(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(value, 10)
	}
	return ""
}

func asBool(v interface{}) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return value == "true"
	}
	return false
}
