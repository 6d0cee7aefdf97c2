package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/pkg/errors"
	"go.uber.org/zap"
)

// vendorColumns - общий список колонок для выборок продавца.
// Координаты извлекаются из географической точки: ST_X - долгота, ST_Y - широта.
const vendorColumns = `
	id, name, category, description, tags,
	ST_Y(location::geometry) AS lat, ST_X(location::geometry) AS lng,
	address, phone, opening_hours, photo,
	source, status, created_by_user_id, moderated_by, moderated_at,
	rejection_reason, view_count, click_count, created_at, updated_at
`

type vendorRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewVendorRepository(db *DB) repository.VendorRepository {
	return &vendorRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// scanVendor читает одну строку выборки с колонками vendorColumns
func scanVendor(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Vendor, error) {
	var v domain.Vendor
	var tags pq.StringArray
	var hoursJSON []byte

	err := row.Scan(
		&v.ID, &v.Name, &v.Category, &v.Description, &tags,
		&v.Location.Lat, &v.Location.Lng,
		&v.Address, &v.Phone, &hoursJSON, &v.Photo,
		&v.Source, &v.Status, &v.CreatedByUserID, &v.ModeratedBy, &v.ModeratedAt,
		&v.RejectionReason, &v.ViewCount, &v.ClickCount, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.Tags = []string(tags)
	if v.Tags == nil {
		v.Tags = []string{}
	}

	v.OpeningHours = map[string]string{}
	if len(hoursJSON) > 0 {
		if err := json.Unmarshal(hoursJSON, &v.OpeningHours); err != nil {
			return nil, fmt.Errorf("unmarshal opening hours: %w", err)
		}
	}

	return &v, nil
}

func (r *vendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`

	vendor, err := scanVendor(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrVendorNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get vendor by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return vendor, nil
}

func (r *vendorRepository) GetNearby(
	ctx context.Context,
	lat, lng float64,
	radius domain.Radius,
	status, category string,
	limit int,
) ([]*domain.Vendor, error) {
	query := `
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS geom
		)
		SELECT ` + vendorColumns + `,
			ST_Distance(location, point.geom) AS distance
		FROM vendors, point
		WHERE ST_DWithin(location, point.geom, $3)
		  AND status = $4
	`

	// ST_MakePoint принимает долготу первым аргументом
	args := []interface{}{lng, lat, radius.Meters(), status}
	argIdx := 5

	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY distance LIMIT $%d", argIdx)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to get nearby vendors",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.collectVendorsWithDistance(rows)
}

func (r *vendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	vendor.CreatedAt = now
	vendor.UpdatedAt = now

	hoursJSON, err := json.Marshal(vendor.OpeningHours)
	if err != nil {
		return fmt.Errorf("marshal opening hours: %w", err)
	}

	query := `
		INSERT INTO vendors (
			id, name, category, description, tags, location,
			address, phone, opening_hours, photo,
			source, status, created_by_user_id, rejection_reason,
			view_count, click_count, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			ST_SetSRID(ST_MakePoint($6, $7), 4326)::geography,
			$8, $9, $10, $11, $12, $13, $14, '', 0, 0, $15, $15
		)
	`

	_, err = r.db.ExecContext(ctx, query,
		vendor.ID, vendor.Name, vendor.Category, vendor.Description,
		pq.Array(vendor.Tags),
		vendor.Location.Lng, vendor.Location.Lat,
		vendor.Address, vendor.Phone, hoursJSON, vendor.Photo,
		vendor.Source, vendor.Status, vendor.CreatedByUserID,
		now,
	)
	if err != nil {
		r.logger.Error("Failed to create vendor", zap.String("name", vendor.Name), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

// buildPatchSet добавляет к запросу SET-клаузы для непустых полей патча.
// Возвращает дополненные аргументы и следующий свободный индекс плейсхолдера.
func buildPatchSet(patch domain.VendorPatch, set []string, args []interface{}, argIdx int) ([]string, []interface{}, int, error) {
	if patch.Name != nil {
		set = append(set, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *patch.Name)
		argIdx++
	}
	if patch.Category != nil {
		set = append(set, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *patch.Category)
		argIdx++
	}
	if patch.Description != nil {
		set = append(set, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *patch.Description)
		argIdx++
	}
	if patch.Tags != nil {
		set = append(set, fmt.Sprintf("tags = $%d", argIdx))
		args = append(args, pq.Array(*patch.Tags))
		argIdx++
	}
	if patch.Address != nil {
		set = append(set, fmt.Sprintf("address = $%d", argIdx))
		args = append(args, *patch.Address)
		argIdx++
	}
	if patch.Phone != nil {
		set = append(set, fmt.Sprintf("phone = $%d", argIdx))
		args = append(args, *patch.Phone)
		argIdx++
	}
	if patch.OpeningHours != nil {
		hoursJSON, err := json.Marshal(*patch.OpeningHours)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("marshal opening hours: %w", err)
		}
		set = append(set, fmt.Sprintf("opening_hours = $%d", argIdx))
		args = append(args, hoursJSON)
		argIdx++
	}
	if patch.Photo != nil {
		set = append(set, fmt.Sprintf("photo = $%d", argIdx))
		args = append(args, *patch.Photo)
		argIdx++
	}
	return set, args, argIdx, nil
}

func (r *vendorRepository) Update(ctx context.Context, id string, patch domain.VendorPatch) (*domain.Vendor, error) {
	set := []string{"updated_at = NOW()"}
	args := []interface{}{}

	set, args, argIdx, err := buildPatchSet(patch, set, args, 1)
	if err != nil {
		r.logger.Error("Failed to build vendor patch", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	query := fmt.Sprintf(
		`UPDATE vendors SET %s WHERE id = $%d RETURNING `+vendorColumns,
		strings.Join(set, ", "), argIdx,
	)
	args = append(args, id)

	vendor, err := scanVendor(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, errors.ErrVendorNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update vendor", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return vendor, nil
}

func (r *vendorRepository) UpdateModeration(
	ctx context.Context,
	id string,
	patch domain.VendorPatch,
	status, moderatorID, rejectionReason string,
) (*domain.Vendor, error) {
	// Смена статуса и контентный патч идут одним UPDATE,
	// чтобы edit-and-approve не мог примениться частично
	set := []string{
		"updated_at = NOW()",
		"status = $1",
		"moderated_by = $2",
		"moderated_at = NOW()",
		"rejection_reason = $3",
	}
	args := []interface{}{status, moderatorID, rejectionReason}

	set, args, argIdx, err := buildPatchSet(patch, set, args, 4)
	if err != nil {
		r.logger.Error("Failed to build moderation patch", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	query := fmt.Sprintf(
		`UPDATE vendors SET %s WHERE id = $%d RETURNING `+vendorColumns,
		strings.Join(set, ", "), argIdx,
	)
	args = append(args, id)

	vendor, err := scanVendor(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, errors.ErrVendorNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update vendor moderation",
			zap.String("id", id),
			zap.String("status", status),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return vendor, nil
}

func (r *vendorRepository) GetByOwner(ctx context.Context, userID string) ([]*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE created_by_user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to get vendors by owner", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.collectVendors(rows)
}

func (r *vendorRepository) GetByStatus(ctx context.Context, status string) ([]*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors`
	args := []interface{}{}

	if status != "" && status != "all" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to get vendors by status", zap.String("status", status), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.collectVendors(rows)
}

func (r *vendorRepository) GetCategories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM vendors WHERE status = $1 ORDER BY category`

	var categories []string
	if err := r.db.SelectContext(ctx, &categories, query, domain.StatusApproved); err != nil {
		r.logger.Error("Failed to get vendor categories", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return categories, nil
}

// escapeLike экранирует метасимволы LIKE, чтобы имя с % или _
// сравнивалось буквально, а не как шаблон
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func (r *vendorRepository) FindDuplicate(
	ctx context.Context,
	name string,
	lat, lng, radiusMeters float64,
) (*domain.Vendor, error) {
	// Похожесть имени - вхождение подстроки в любую сторону без учёта
	// регистра. Статус не фильтруется: отклонённая запись тоже блокирует
	// повторную заявку на том же месте. При нескольких совпадениях
	// детерминированно побеждает ближайшее. Сторона, выступающая шаблоном,
	// экранируется: в Go для заявленного имени, в SQL для хранимого.
	query := `
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS geom
		)
		SELECT ` + vendorColumns + `
		FROM vendors, point
		WHERE ST_DWithin(location, point.geom, $3)
		  AND (
			name ILIKE '%' || $4 || '%'
			OR $5 ILIKE '%' || replace(replace(replace(name, '\', '\\'), '%', '\%'), '_', '\_') || '%'
		  )
		ORDER BY ST_Distance(location, point.geom), id
		LIMIT 1
	`

	vendor, err := scanVendor(r.db.QueryRowContext(ctx, query, lng, lat, radiusMeters, escapeLike(name), name))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to check for duplicate vendor",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return vendor, nil
}

func (r *vendorRepository) IncrementViewCount(ctx context.Context, id string) error {
	query := `UPDATE vendors SET view_count = view_count + 1 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("Failed to increment view count", zap.String("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *vendorRepository) IncrementClickCount(ctx context.Context, id string) error {
	query := `UPDATE vendors SET click_count = click_count + 1 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("Failed to increment click count", zap.String("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *vendorRepository) GetAnalytics(ctx context.Context) (*domain.VendorAnalytics, error) {
	query := `
		SELECT
			COUNT(*) AS total_vendors,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved_vendors,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending_vendors,
			COUNT(*) FILTER (WHERE source = 'user' AND status = 'approved') AS user_submissions,
			COALESCE(SUM(view_count), 0) AS total_views,
			COALESCE(SUM(click_count), 0) AS total_clicks
		FROM vendors
	`

	var analytics domain.VendorAnalytics
	if err := r.db.GetContext(ctx, &analytics, query); err != nil {
		r.logger.Error("Failed to get vendor analytics", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &analytics, nil
}

func (r *vendorRepository) collectVendors(rows *sql.Rows) ([]*domain.Vendor, error) {
	vendors := []*domain.Vendor{}
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			r.logger.Error("Failed to scan vendor", zap.Error(err))
			continue
		}
		vendors = append(vendors, vendor)
	}
	return vendors, nil
}

// collectVendorsWithDistance читает строки с дополнительной колонкой distance.
// Само значение не возвращается: итоговую дистанцию считает вызывающая
// сторона, здесь колонка нужна только для сортировки.
func (r *vendorRepository) collectVendorsWithDistance(rows *sql.Rows) ([]*domain.Vendor, error) {
	vendors := []*domain.Vendor{}
	for rows.Next() {
		var v domain.Vendor
		var tags pq.StringArray
		var hoursJSON []byte
		var distance float64

		err := rows.Scan(
			&v.ID, &v.Name, &v.Category, &v.Description, &tags,
			&v.Location.Lat, &v.Location.Lng,
			&v.Address, &v.Phone, &hoursJSON, &v.Photo,
			&v.Source, &v.Status, &v.CreatedByUserID, &v.ModeratedBy, &v.ModeratedAt,
			&v.RejectionReason, &v.ViewCount, &v.ClickCount, &v.CreatedAt, &v.UpdatedAt,
			&distance,
		)
		if err != nil {
			r.logger.Error("Failed to scan vendor", zap.Error(err))
			continue
		}

		v.Tags = []string(tags)
		if v.Tags == nil {
			v.Tags = []string{}
		}
		v.OpeningHours = map[string]string{}
		if len(hoursJSON) > 0 {
			if err := json.Unmarshal(hoursJSON, &v.OpeningHours); err != nil {
				r.logger.Warn("Failed to unmarshal opening hours", zap.String("id", v.ID), zap.Error(err))
			}
		}

		vendors = append(vendors, &v)
	}
	return vendors, nil
}

