package repository

import (
	"context"
	"database/sql"
	"fmt"

	"MachiNavi-App/internal/domain/model"
	"MachiNavi-App/internal/domain/repository"
	"MachiNavi-App/internal/infrastructure/database"
)

// PostgresPlacesRepository はPostgreSQL直接接続のランドマークリポジトリ
// Firestoreを使わない構成向けのフォールバック実装
type PostgresPlacesRepository struct {
	client *database.PostgreSQLClient
}

// NewPostgresPlacesRepository は新しいPostgresPlacesRepositoryインスタンスを作成
func NewPostgresPlacesRepository(client *database.PostgreSQLClient) repository.PlacesRepository {
	return &PostgresPlacesRepository{client: client}
}

// placeResult はスキャン結果を受け取るための構造体
type placeResult struct {
	ID                 string
	Name               string
	Latitude           string
	Longitude          string
	Address            sql.NullString
	Category           sql.NullString
	CategoryOption     sql.NullString
	AccessibleRestroom bool
}

// toPlace はplaceResultをmodel.Placeに変換
func (pr *placeResult) toPlace() *model.Place {
	return &model.Place{
		ID:                 pr.ID,
		Name:               pr.Name,
		Latitude:           pr.Latitude,
		Longitude:          pr.Longitude,
		Address:            pr.Address.String,
		Category:           pr.Category.String,
		CategoryOption:     pr.CategoryOption.String,
		AccessibleRestroom: pr.AccessibleRestroom,
	}
}

// GetByID は指定IDのランドマークを1件取得する
func (r *PostgresPlacesRepository) GetByID(ctx context.Context, id string) (*model.Place, error) {
	query := `SELECT id, name, latitude, longitude, address, category, category_option, accessible_restroom FROM places WHERE id = $1`

	row := r.client.DB.QueryRowContext(ctx, query, id)

	var result placeResult
	err := row.Scan(&result.ID, &result.Name, &result.Latitude, &result.Longitude,
		&result.Address, &result.Category, &result.CategoryOption, &result.AccessibleRestroom)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("ランドマーク ID %s が見つかりません", id)
		}
		return nil, fmt.Errorf("ランドマークデータの取得失敗: %w", err)
	}

	return result.toPlace(), nil
}

// GetAll はランドマーク全件を取得する
func (r *PostgresPlacesRepository) GetAll(ctx context.Context) ([]*model.Place, error) {
	query := `SELECT id, name, latitude, longitude, address, category, category_option, accessible_restroom FROM places`

	rows, err := r.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ランドマーク一覧の取得失敗: %w", err)
	}
	defer rows.Close()

	var places []*model.Place
	for rows.Next() {
		var result placeResult
		err := rows.Scan(&result.ID, &result.Name, &result.Latitude, &result.Longitude,
			&result.Address, &result.Category, &result.CategoryOption, &result.AccessibleRestroom)
		if err != nil {
			return nil, fmt.Errorf("ランドマークデータスキャンエラー: %w", err)
		}
		places = append(places, result.toPlace())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ランドマーク一覧の読み取りエラー: %w", err)
	}
	return places, nil
}
