package calendar

// Page описывает одну страницу элементов.
type Page[T any] struct {
	Items    []T  `json:"items"`    // элементы на текущей странице
	Page     int  `json:"page"`     // номер страницы (с 1)
	PageSize int  `json:"pageSize"` // количество элементов на странице
	HasNext  bool `json:"hasNext"`
	HasPrev  bool `json:"hasPrev"`
	Total    int  `json:"total"` // общее количество элементов
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// NormalizePage приводит номер и размер страницы к допустимым значениям.
func NormalizePage(page, pageSize int) (int, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page <= 0 {
		page = 1
	}
	return page, pageSize
}

// Offset — смещение для SQL LIMIT/OFFSET.
func Offset(page, pageSize int) int {
	page, pageSize = NormalizePage(page, pageSize)
	return (page - 1) * pageSize
}
