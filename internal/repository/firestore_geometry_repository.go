package repository

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"TerritoryAtlas-App/internal/domain/model"
	"TerritoryAtlas-App/internal/domain/repository"
)

// FirestoreGeometryRepository Firestoreを使用したジオメトリドキュメントキャッシュリポジトリ
type FirestoreGeometryRepository struct {
	client *firestore.Client
}

// NewFirestoreGeometryRepository 新しいFirestoreGeometryRepositoryインスタンスを作成
func NewFirestoreGeometryRepository(client *firestore.Client) repository.TerritoryGeometryCacheRepository {
	return &FirestoreGeometryRepository{
		client: client,
	}
}

// SaveGeometry は計算済みジオメトリドキュメントをFirestoreにTTL付きで保存する
func (r *FirestoreGeometryRepository) SaveGeometry(ctx context.Context, geometry *model.TerritoryGeometry, ttlHours int) error {
	collection := r.client.Collection("territoryGeometries")

	// Firestore用の構造体に変換
	firestoreData := geometry.ToFirestoreTerritoryGeometry(ttlHours)

	_, err := collection.Doc(geometry.TerritoryID).Set(ctx, firestoreData)
	if err != nil {
		log.Printf("❌ Failed to save territory geometry %s: %v", geometry.TerritoryID, err)
		return fmt.Errorf("ジオメトリドキュメントの保存に失敗しました: %w", err)
	}

	log.Printf("✅ Territory geometry saved: %s (expires in %d hours)", geometry.TerritoryID, ttlHours)
	return nil
}

// GetGeometry は指定されたテリトリーIDのジオメトリドキュメントをFirestoreから取得する
func (r *FirestoreGeometryRepository) GetGeometry(ctx context.Context, territoryID string) (*model.TerritoryGeometry, error) {
	doc, err := r.client.Collection("territoryGeometries").Doc(territoryID).Get(ctx)
	if err != nil {
		// Firestoreのエラータイプをチェック
		if status := err.Error(); strings.Contains(status, "NotFound") || strings.Contains(status, "not found") {
			return nil, fmt.Errorf("ジオメトリドキュメントが見つかりません（有効期限切れまたは無効なID）: %s", territoryID)
		}
		return nil, fmt.Errorf("ジオメトリドキュメントの取得に失敗しました: %w", err)
	}

	var firestoreData model.FirestoreTerritoryGeometry
	if err := doc.DataTo(&firestoreData); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}

	// TTLポリシーの反映遅延に備えてアプリケーション側でも期限を確認
	if !firestoreData.ExpireAt.IsZero() && firestoreData.ExpireAt.Before(time.Now()) {
		return nil, fmt.Errorf("ジオメトリドキュメントの有効期限が切れています: %s", territoryID)
	}

	return firestoreData.ToTerritoryGeometry(), nil
}
