package domain

import "time"

// Источник записи о продавце
const (
	SourceAdmin = "admin"
	SourceUser  = "user"
)

// Статусы модерации
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Vendor представляет продавца (торговую точку)
type Vendor struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Category    string   `json:"category" db:"category"`
	Description string   `json:"description" db:"description"`
	Tags        []string `json:"tags" db:"tags"`
	Location    Location `json:"location"`
	Address     string   `json:"address" db:"address"`
	Phone       string   `json:"phone" db:"phone"`
	// OpeningHours - расписание работы, ключ - день недели
	OpeningHours map[string]string `json:"openingHours" db:"opening_hours"`
	Photo        string            `json:"photo" db:"photo"`

	// Поля модерации
	Source          string     `json:"source" db:"source"`
	Status          string     `json:"status" db:"status"`
	CreatedByUserID *string    `json:"createdByUserId,omitempty" db:"created_by_user_id"`
	ModeratedBy     *string    `json:"moderatedBy,omitempty" db:"moderated_by"`
	ModeratedAt     *time.Time `json:"moderatedAt,omitempty" db:"moderated_at"`
	RejectionReason string     `json:"rejectionReason" db:"rejection_reason"`

	// Аналитика
	ViewCount  int64 `json:"viewCount" db:"view_count"`
	ClickCount int64 `json:"clickCount" db:"click_count"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsOwnedBy проверяет, принадлежит ли запись данному пользователю
func (v *Vendor) IsOwnedBy(userID string) bool {
	return v.CreatedByUserID != nil && *v.CreatedByUserID == userID
}

// VendorPatch - частичное обновление полей продавца.
// nil означает "поле не передано", указатель на пустое значение применяется как есть.
type VendorPatch struct {
	Name         *string
	Category     *string
	Description  *string
	Tags         *[]string
	Address      *string
	Phone        *string
	OpeningHours *map[string]string
	Photo        *string
}

// IsEmpty сообщает, что патч не содержит ни одного поля
func (p VendorPatch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Description == nil &&
		p.Tags == nil && p.Address == nil && p.Phone == nil &&
		p.OpeningHours == nil && p.Photo == nil
}

// VendorAnalytics - агрегированные счётчики по всем продавцам
type VendorAnalytics struct {
	TotalVendors    int64 `json:"totalVendors" db:"total_vendors"`
	ApprovedVendors int64 `json:"approvedVendors" db:"approved_vendors"`
	PendingVendors  int64 `json:"pendingVendors" db:"pending_vendors"`
	UserSubmissions int64 `json:"userSubmissions" db:"user_submissions"`
	TotalViews      int64 `json:"totalViews" db:"total_views"`
	TotalClicks     int64 `json:"totalClicks" db:"total_clicks"`
}
