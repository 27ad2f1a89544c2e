package model

import "time"

// TerritoryGeometry 正規化済みジオメトリと表示用文字列をまとめたドキュメント
// 地図オーバーレイ描画レイヤーがそのまま利用できる形式
type TerritoryGeometry struct {
	TerritoryID      string         `json:"territory_id"`
	Rings            [][]Coordinate `json:"rings"`             // 正規化済みリング（空の場合は有効な境界なし）
	RingCount        int            `json:"ring_count"`
	PerimeterDisplay string         `json:"perimeter_display"` // 表示用の外周距離
	AreaDisplay      string         `json:"area_display"`      // 表示用の面積
}

// FirestoreTerritoryGeometry Firestoreに保存するジオメトリキャッシュドキュメント
type FirestoreTerritoryGeometry struct {
	TerritoryID      string         `firestore:"territory_id"`
	Rings            [][]Coordinate `firestore:"rings"`
	RingCount        int            `firestore:"ring_count"`
	PerimeterDisplay string         `firestore:"perimeter_display"`
	AreaDisplay      string         `firestore:"area_display"`
	ExpireAt         time.Time      `firestore:"expireAt"`
}

// ToFirestoreTerritoryGeometry TTL付きのFirestoreドキュメントに変換
func (tg *TerritoryGeometry) ToFirestoreTerritoryGeometry(ttlHours int) *FirestoreTerritoryGeometry {
	return &FirestoreTerritoryGeometry{
		TerritoryID:      tg.TerritoryID,
		Rings:            tg.Rings,
		RingCount:        tg.RingCount,
		PerimeterDisplay: tg.PerimeterDisplay,
		AreaDisplay:      tg.AreaDisplay,
		ExpireAt:         time.Now().Add(time.Duration(ttlHours) * time.Hour),
	}
}

// ToTerritoryGeometry FirestoreドキュメントからAPIレスポンス用に変換
func (ftg *FirestoreTerritoryGeometry) ToTerritoryGeometry() *TerritoryGeometry {
	return &TerritoryGeometry{
		TerritoryID:      ftg.TerritoryID,
		Rings:            ftg.Rings,
		RingCount:        ftg.RingCount,
		PerimeterDisplay: ftg.PerimeterDisplay,
		AreaDisplay:      ftg.AreaDisplay,
	}
}
