package helper

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MeasurePlaceholder 計測値が不明な場合に表示するプレースホルダー文字列
const MeasurePlaceholder = "—"

// areaUnitSwitchKm2 面積表示をm²からkm²に切り替える閾値 (0.01 km² = 10,000 m²)
const areaUnitSwitchKm2 = 0.01

// measurePrinter 桁区切りのロケール整形用プリンター（例: 5000 → "5,000"）
var measurePrinter = message.NewPrinter(language.English)

// FormatDistanceMeters 距離を表示用文字列に整形する
// 1000m未満は整数メートル、それ以上は小数1桁のキロメートルで表示する
func FormatDistanceMeters(meters *float64) string {
	if meters == nil {
		return MeasurePlaceholder
	}
	if math.Abs(*meters) < 1000 {
		return fmt.Sprintf("%.0f m", *meters)
	}
	return fmt.Sprintf("%.1f km", *meters/1000)
}

// FormatAreaSquareMeters 平方メートル単位の面積を表示用文字列に整形する
// 0.01km²未満は桁区切り付きの整数m²、それ以上は小数2桁のkm²で表示する
func FormatAreaSquareMeters(squareMeters *float64) string {
	if squareMeters == nil {
		return MeasurePlaceholder
	}
	return formatAreaFromSquareMeters(*squareMeters)
}

// FormatAreaKm2 平方キロメートル単位の面積を表示用文字列に整形する
// 閾値・丸め規則はFormatAreaSquareMetersと完全に一致する
func FormatAreaKm2(km2 *float64) string {
	if km2 == nil {
		return MeasurePlaceholder
	}
	return formatAreaFromSquareMeters(*km2 * 1_000_000)
}

// formatAreaFromSquareMeters 面積整形の共通処理
// 両方の公開関数がここに委譲することで単位切り替えの一貫性を保証する
func formatAreaFromSquareMeters(squareMeters float64) string {
	km2 := squareMeters / 1_000_000
	if km2 < areaUnitSwitchKm2 {
		return measurePrinter.Sprintf("%d m²", int64(math.Round(squareMeters)))
	}
	return fmt.Sprintf("%.2f km²", km2)
}
