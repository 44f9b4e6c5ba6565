package firestore

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// FirestoreClient はイベント・マーカーコレクションへの接続を保持する
type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient はFirestoreクライアントを初期化する
// FIRESTORE_CREDENTIALS_FILEが指すキーがあればそれを使い、
// なければAmbient認証（Cloud Runのサービスアカウント等）に任せる
func NewFirestoreClient(ctx context.Context, projectID string) (*FirestoreClient, error) {
	var opts []option.ClientOption

	if credentialsFile := os.Getenv("FIRESTORE_CREDENTIALS_FILE"); credentialsFile != "" {
		if _, err := os.Stat(credentialsFile); err != nil {
			return nil, fmt.Errorf("認証キーファイルが見つかりません: %s: %w", credentialsFile, err)
		}
		log.Printf("📄 認証キーファイルを使用: %s", credentialsFile)
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("Firestoreクライアントの作成に失敗しました: %w", err)
	}

	log.Printf("✅ Firestoreクライアントを初期化しました (project: %s)", projectID)
	return &FirestoreClient{client: client}, nil
}

func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}
