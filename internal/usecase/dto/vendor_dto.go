package dto

import (
	"math"
	"time"

	"github.com/nearby-service/internal/domain"
)

// NearbyRequest - параметры поиска продавцов рядом с точкой
type NearbyRequest struct {
	Lat          float64 `json:"lat" validate:"min=-90,max=90"`
	Lng          float64 `json:"lng" validate:"min=-180,max=180"`
	RadiusMeters float64 `json:"radius"`
	Category     string  `json:"category"`
	Search       string  `json:"search"`
	Limit        int     `json:"limit"`
}

// LocationInput - точка в именованных полях API
type LocationInput struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// SubmitVendorRequest - заявка на добавление продавца
type SubmitVendorRequest struct {
	Name         string            `json:"name" validate:"required"`
	Category     string            `json:"category" validate:"required"`
	Description  string            `json:"description"`
	Tags         []string          `json:"tags"`
	Location     *LocationInput    `json:"location" validate:"required"`
	Address      string            `json:"address"`
	Phone        string            `json:"phone"`
	OpeningHours map[string]string `json:"openingHours"`
	Photo        string            `json:"photo"`
}

// VendorPatchRequest - частичное обновление при edit-and-approve.
// Отсутствующее поле остаётся nil и не трогается; явно переданная
// пустая строка применяется.
type VendorPatchRequest struct {
	Name         *string            `json:"name"`
	Category     *string            `json:"category"`
	Description  *string            `json:"description"`
	Tags         *[]string          `json:"tags"`
	Address      *string            `json:"address"`
	Phone        *string            `json:"phone"`
	OpeningHours *map[string]string `json:"openingHours"`
	Photo        *string            `json:"photo"`
}

// ToPatch переводит запрос в доменный патч
func (r VendorPatchRequest) ToPatch() domain.VendorPatch {
	return domain.VendorPatch{
		Name:         r.Name,
		Category:     r.Category,
		Description:  r.Description,
		Tags:         r.Tags,
		Address:      r.Address,
		Phone:        r.Phone,
		OpeningHours: r.OpeningHours,
		Photo:        r.Photo,
	}
}

// RejectRequest - тело запроса отклонения заявки
type RejectRequest struct {
	Reason string `json:"reason"`
}

// VendorPublic - публичная проекция продавца. Поля модерации
// moderatedBy и rejectionReason в публичный READ-путь не попадают.
type VendorPublic struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Category        string            `json:"category"`
	Description     string            `json:"description"`
	Tags            []string          `json:"tags"`
	Location        domain.Location   `json:"location"`
	Address         string            `json:"address"`
	Phone           string            `json:"phone"`
	OpeningHours    map[string]string `json:"openingHours"`
	Photo           string            `json:"photo"`
	Source          string            `json:"source"`
	Status          string            `json:"status"`
	CreatedByUserID *string           `json:"createdByUserId,omitempty"`
	ModeratedAt     *time.Time        `json:"moderatedAt,omitempty"`
	ViewCount       int64             `json:"viewCount"`
	ClickCount      int64             `json:"clickCount"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`

	// Distance заполняется только в nearby-выдаче, метры
	Distance *int64 `json:"distance,omitempty"`
}

// NewVendorPublic строит публичную проекцию без полей модерации
func NewVendorPublic(v *domain.Vendor) VendorPublic {
	return VendorPublic{
		ID:              v.ID,
		Name:            v.Name,
		Category:        v.Category,
		Description:     v.Description,
		Tags:            v.Tags,
		Location:        v.Location,
		Address:         v.Address,
		Phone:           v.Phone,
		OpeningHours:    v.OpeningHours,
		Photo:           v.Photo,
		Source:          v.Source,
		Status:          v.Status,
		CreatedByUserID: v.CreatedByUserID,
		ModeratedAt:     v.ModeratedAt,
		ViewCount:       v.ViewCount,
		ClickCount:      v.ClickCount,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

// NewVendorPublicWithDistance строит проекцию с округлённой дистанцией
func NewVendorPublicWithDistance(v *domain.Vendor, distanceMeters float64) VendorPublic {
	out := NewVendorPublic(v)
	d := int64(math.Round(distanceMeters))
	out.Distance = &d
	return out
}

// NearbyResponse - результат поиска рядом с точкой
type NearbyResponse struct {
	Vendors []VendorPublic `json:"vendors"`
}
