package model

// CategoryConstants はアプリケーションで使用するテリトリーカテゴリの定数
const (
	CategoryAdministrative = "administrative"
	CategoryConservation   = "conservation"
	CategoryAgricultural   = "agricultural"
	CategoryUrban          = "urban"
	CategoryOther          = "other"
)

// CategoryNameMap はカテゴリIDから日本語名へのマッピング
var CategoryNameMap = map[string]string{
	CategoryAdministrative: "行政区域",
	CategoryConservation:   "自然保護区",
	CategoryAgricultural:   "農業区域",
	CategoryUrban:          "市街地",
	CategoryOther:          "その他",
}

// GetCategoryJapaneseName はカテゴリIDから日本語名を取得する
func GetCategoryJapaneseName(category string) string {
	if name, ok := CategoryNameMap[category]; ok {
		return name
	}
	return category // デフォルトはそのまま返す
}

// IsKnownCategory は定義済みカテゴリかどうかを判定する
func IsKnownCategory(category string) bool {
	_, ok := CategoryNameMap[category]
	return ok
}

// GetAllCategories は全カテゴリの一覧を取得する
func GetAllCategories() []string {
	return []string{
		CategoryAdministrative,
		CategoryConservation,
		CategoryAgricultural,
		CategoryUrban,
		CategoryOther,
	}
}
