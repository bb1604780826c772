package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
)

const pgErrInvalidTextRepresentation = "22P02"

var _ ports.Repository = (*Repository)(nil)

// Repository persists travel orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and runs migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// travelOrderRecord maps the aggregate to the travel_orders table.
type travelOrderRecord struct {
	ID            string         `gorm:"primaryKey;column:id;type:uuid"`
	OwnerID       string         `gorm:"column:owner_id;type:uuid;not null;index:idx_travel_orders_owner_status"`
	Destination   string         `gorm:"column:destination;size:255;not null"`
	DepartureDate time.Time      `gorm:"column:departure_date;type:date;not null"`
	ReturnDate    time.Time      `gorm:"column:return_date;type:date;not null"`
	Status        string         `gorm:"column:status;type:varchar(16);not null;index:idx_travel_orders_owner_status"`
	CanceledAt    *time.Time     `gorm:"column:cancelled_at"`
	CreatedAt     time.Time      `gorm:"column:created_at;index"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (travelOrderRecord) TableName() string { return "travel_orders" }

func (r *Repository) Create(ctx context.Context, order *domain.TravelOrder) (*domain.TravelOrder, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("travel order is nil")
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.TravelOrder, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record travelOrderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || isInvalidID(err) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ExistsForOwner(ctx context.Context, id, ownerID string) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&travelOrderRecord{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Limit(1).
		Count(&count).Error
	if isInvalidID(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) FindByOwner(ctx context.Context, ownerID string, filter ports.ListFilter, page ports.PageRequest) (ports.Page, error) {
	if err := r.ensureDB(); err != nil {
		return ports.Page{}, err
	}
	query := applyFilter(r.db.WithContext(ctx).Model(&travelOrderRecord{}).Where("owner_id = ?", ownerID), filter).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return ports.Page{}, err
	}
	var records []travelOrderRecord
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&records).Error; err != nil {
		return ports.Page{}, err
	}
	items := make([]*domain.TravelOrder, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return ports.Page{Items: items, Page: page.Page, PerPage: page.PerPage, Total: total}, nil
}

// UpdateStatus issues a conditional UPDATE so only one racing writer wins.
func (r *Repository) UpdateStatus(ctx context.Context, id string, update ports.StatusUpdate) (*domain.TravelOrder, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	values := map[string]any{
		"status":     string(update.Status),
		"updated_at": update.UpdatedAt,
	}
	if update.CanceledAt != nil {
		values["cancelled_at"] = *update.CanceledAt
	}
	result := r.db.WithContext(ctx).
		Model(&travelOrderRecord{}).
		Where("id = ? AND status = ?", id, string(update.Expected)).
		Updates(values)
	if isInvalidID(result.Error) {
		return nil, ports.ErrNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ports.ErrStatusConflict
	}
	return r.FindByID(ctx, id)
}

func applyFilter(query *gorm.DB, f ports.ListFilter) *gorm.DB {
	if f.Status != nil {
		query = query.Where("status = ?", string(*f.Status))
	}
	if dest := strings.TrimSpace(f.Destination); dest != "" {
		query = query.Where("destination ILIKE ?", "%"+escapeLike(dest)+"%")
	}
	if f.CreatedFrom != nil {
		query = query.Where("created_at >= ?", domain.Date(*f.CreatedFrom))
	}
	if f.CreatedTo != nil {
		query = query.Where("created_at < ?", domain.Date(*f.CreatedTo).AddDate(0, 0, 1))
	}
	if f.TravelFrom != nil {
		query = query.Where("departure_date >= ?", domain.Date(*f.TravelFrom))
	}
	if f.TravelTo != nil {
		query = query.Where("return_date <= ?", domain.Date(*f.TravelTo))
	}
	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres travel order repository not configured")
	}
	return nil
}

func toRecord(order *domain.TravelOrder) travelOrderRecord {
	return travelOrderRecord{
		ID:            order.ID,
		OwnerID:       order.OwnerID,
		Destination:   order.Destination,
		DepartureDate: order.DepartureDate,
		ReturnDate:    order.ReturnDate,
		Status:        string(order.Status),
		CanceledAt:    order.CanceledAt,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

func (r travelOrderRecord) toDomain() *domain.TravelOrder {
	order := &domain.TravelOrder{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		Destination:   r.Destination,
		DepartureDate: domain.Date(r.DepartureDate),
		ReturnDate:    domain.Date(r.ReturnDate),
		Status:        domain.Status(r.Status),
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
	if r.CanceledAt != nil {
		ts := r.CanceledAt.UTC()
		order.CanceledAt = &ts
	}
	return order
}

// isInvalidID reports a value the uuid column could not parse.
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrInvalidTextRepresentation
}
