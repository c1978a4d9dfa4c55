package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Turf represents a rentable sports venue
type Turf struct {
	ID            int64
	Name          string
	Location      string
	PricePerHour  decimal.Decimal
	IsResidential bool
	ImageURL      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate проверяет поля площадки перед сохранением
func (t *Turf) Validate() error {
	name := strings.TrimSpace(t.Name)
	location := strings.TrimSpace(t.Location)
	if name == "" || len(name) > MaxTurfNameLength {
		return ErrInvalidTurfFields
	}
	if location == "" || len(location) > MaxTurfLocationLength {
		return ErrInvalidTurfFields
	}
	if t.ImageURL != nil && len(*t.ImageURL) > MaxImageURLLength {
		return ErrInvalidTurfFields
	}
	if t.PricePerHour.IsNegative() || t.PricePerHour.GreaterThan(decimal.NewFromFloat(MaxPricePerHour)) {
		return ErrInvalidPrice
	}
	return nil
}

// TurfFilter фильтр каталога площадок
type TurfFilter struct {
	Query       *string // Поиск по названию или адресу без учета регистра
	Residential *bool
}
