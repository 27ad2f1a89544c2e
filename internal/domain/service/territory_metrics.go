package service

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// TerritoryMetrics 正規化済みリングから導出した計測値
// リングが1つもない場合はどちらもnil（不明）となる
type TerritoryMetrics struct {
	PerimeterMeters *float64
	AreaSquareM     *float64
}

// CalcTerritoryMetrics は正規化済みリングから外周距離と面積を計算する
// 外周は最初のリング（外側境界）の測地線距離、面積は穴を差し引いたポリゴン全体の値
func CalcTerritoryMetrics(rings []orb.Ring) TerritoryMetrics {
	if len(rings) == 0 {
		return TerritoryMetrics{}
	}

	perimeter := ringPerimeterMeters(rings[0])

	// orbの面積計算は閉じたリングを前提とするため計算用に閉じる
	closed := make(orb.Polygon, 0, len(rings))
	for _, ring := range rings {
		closed = append(closed, closeRing(ring))
	}
	area := math.Abs(geo.Area(closed))

	return TerritoryMetrics{
		PerimeterMeters: &perimeter,
		AreaSquareM:     &area,
	}
}

// closeRing リングが閉じていない場合は始点を複製した閉じたコピーを返す
func closeRing(ring orb.Ring) orb.Ring {
	if len(ring) == 0 || ring[0] == ring[len(ring)-1] {
		return ring
	}
	closed := make(orb.Ring, len(ring), len(ring)+1)
	copy(closed, ring)
	return append(closed, ring[0])
}

// ringPerimeterMeters リングの外周距離を計算する (m)
// リングが明示的に閉じられていない場合は終点から始点までの距離を加算する
func ringPerimeterMeters(ring orb.Ring) float64 {
	if len(ring) < 2 {
		return 0
	}

	total := 0.0
	for i := 0; i < len(ring)-1; i++ {
		total += geo.Distance(ring[i], ring[i+1])
	}

	first, last := ring[0], ring[len(ring)-1]
	if first != last {
		total += geo.Distance(last, first)
	}

	return total
}
