package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
)

// Request модели

// ListTurfsRequest запрос каталога площадок
type ListTurfsRequest struct {
	Query       *string `json:"q,omitempty"`
	Residential *bool   `json:"residential,omitempty"`
}

// CreateTurfRequest запрос на создание площадки
type CreateTurfRequest struct {
	UserID        int64           `json:"-"`
	Name          string          `json:"name"`
	Location      string          `json:"location"`
	PricePerHour  decimal.Decimal `json:"pricePerHour"`
	IsResidential bool            `json:"isResidential"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
}

// UpdateTurfRequest запрос на обновление площадки
// Все поля опциональны - обновляются только переданные значения
type UpdateTurfRequest struct {
	UserID        int64            `json:"-"`
	Name          *string          `json:"name,omitempty"`
	Location      *string          `json:"location,omitempty"`
	PricePerHour  *decimal.Decimal `json:"pricePerHour,omitempty"`
	IsResidential *bool            `json:"isResidential,omitempty"`
	ImageURL      *string          `json:"imageUrl,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListTurfsRequest) ToDomainFilter() domain.TurfFilter {
	filter := domain.TurfFilter{Residential: r.Residential}
	if r.Query != nil {
		if q := strings.TrimSpace(*r.Query); q != "" {
			filter.Query = &q
		}
	}
	return filter
}

// ToDomainTurf конвертирует запрос создания в domain модель
func (r *CreateTurfRequest) ToDomainTurf() *domain.Turf {
	return &domain.Turf{
		Name:          strings.TrimSpace(r.Name),
		Location:      strings.TrimSpace(r.Location),
		PricePerHour:  r.PricePerHour.Round(2),
		IsResidential: r.IsResidential,
		ImageURL:      r.ImageURL,
	}
}

// ApplyToTurf применяет переданные поля к площадке
func (r *UpdateTurfRequest) ApplyToTurf(t *domain.Turf) {
	if r.Name != nil {
		t.Name = strings.TrimSpace(*r.Name)
	}
	if r.Location != nil {
		t.Location = strings.TrimSpace(*r.Location)
	}
	if r.PricePerHour != nil {
		t.PricePerHour = r.PricePerHour.Round(2)
	}
	if r.IsResidential != nil {
		t.IsResidential = *r.IsResidential
	}
	if r.ImageURL != nil {
		t.ImageURL = r.ImageURL
	}
}

// Response модели

// TurfResponse ответ с данными площадки
type TurfResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	PricePerHour  string    `json:"pricePerHour"` // "1500.00"
	IsResidential bool      `json:"isResidential"`
	ImageURL      *string   `json:"imageUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TurfListResponse ответ со списком площадок
type TurfListResponse struct {
	Turfs []TurfResponse `json:"turfs"`
}

// FromDomainTurf конвертирует domain модель в DTO
func FromDomainTurf(t *domain.Turf) *TurfResponse {
	if t == nil {
		return nil
	}

	return &TurfResponse{
		ID:            t.ID,
		Name:          t.Name,
		Location:      t.Location,
		PricePerHour:  t.PricePerHour.StringFixed(2),
		IsResidential: t.IsResidential,
		ImageURL:      t.ImageURL,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// FromDomainTurfList конвертирует список domain моделей в DTO
func FromDomainTurfList(turfs []*domain.Turf) *TurfListResponse {
	resp := &TurfListResponse{
		Turfs: make([]TurfResponse, 0, len(turfs)),
	}
	for _, t := range turfs {
		if r := FromDomainTurf(t); r != nil {
			resp.Turfs = append(resp.Turfs, *r)
		}
	}
	return resp
}
