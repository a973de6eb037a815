package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gestion/backend/internal/domain/restaurant"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormZoneRepository implements restaurant.ZoneRepository using GORM
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a new GormZoneRepository
func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// FindByID finds a zone by ID
func (r *GormZoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*restaurant.Zone, error) {
	var model models.ZoneModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a zone by code
func (r *GormZoneRepository) FindByCode(ctx context.Context, code string) (*restaurant.Zone, error) {
	var model models.ZoneModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds zones matching the filter
func (r *GormZoneRepository) FindAll(ctx context.Context, filter shared.Filter) ([]restaurant.Zone, error) {
	var zoneModels []models.ZoneModel
	query := r.db.WithContext(ctx).Model(&models.ZoneModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		}
	}
	query = applyListOptions(query, filter, "code ASC")

	if err := query.Find(&zoneModels).Error; err != nil {
		return nil, err
	}

	zones := make([]restaurant.Zone, len(zoneModels))
	for i, model := range zoneModels {
		zones[i] = *model.ToDomain()
	}
	return zones, nil
}

// ExistsByCode checks whether a zone code is taken
func (r *GormZoneRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ZoneModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountTables counts tables assigned to a zone
func (r *GormZoneRepository) CountTables(ctx context.Context, zoneID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TableModel{}).
		Where("zone_id = ?", zoneID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a zone
func (r *GormZoneRepository) Save(ctx context.Context, zone *restaurant.Zone) error {
	model := models.ZoneModelFromDomain(zone)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a zone
func (r *GormZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ZoneModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ restaurant.ZoneRepository = (*GormZoneRepository)(nil)

// GormTableRepository implements restaurant.TableRepository using GORM
type GormTableRepository struct {
	db *gorm.DB
}

// NewGormTableRepository creates a new GormTableRepository
func NewGormTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

// FindByID finds a table by ID
func (r *GormTableRepository) FindByID(ctx context.Context, id uuid.UUID) (*restaurant.Table, error) {
	var model models.TableModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a table by code
func (r *GormTableRepository) FindByCode(ctx context.Context, code string) (*restaurant.Table, error) {
	var model models.TableModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds tables matching the filter
func (r *GormTableRepository) FindAll(ctx context.Context, filter shared.Filter) ([]restaurant.Table, error) {
	var tableModels []models.TableModel
	query := r.db.WithContext(ctx).Model(&models.TableModel{})
	if filter.Search != "" {
		query = query.Where("code ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "zone_id":
			query = query.Where("zone_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	query = applyListOptions(query, filter, "code ASC")

	if err := query.Find(&tableModels).Error; err != nil {
		return nil, err
	}
	return toTables(tableModels), nil
}

// FindByZone finds all tables in a zone
func (r *GormTableRepository) FindByZone(ctx context.Context, zoneID uuid.UUID) ([]restaurant.Table, error) {
	var tableModels []models.TableModel
	if err := r.db.WithContext(ctx).
		Where("zone_id = ?", zoneID).
		Order("code ASC").
		Find(&tableModels).Error; err != nil {
		return nil, err
	}
	return toTables(tableModels), nil
}

// FindByStatus finds all tables in a status
func (r *GormTableRepository) FindByStatus(ctx context.Context, status restaurant.TableStatus) ([]restaurant.Table, error) {
	var tableModels []models.TableModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("code ASC").
		Find(&tableModels).Error; err != nil {
		return nil, err
	}
	return toTables(tableModels), nil
}

// ExistsByCode checks whether a table code is taken
func (r *GormTableRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TableModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a table
func (r *GormTableRepository) Save(ctx context.Context, table *restaurant.Table) error {
	model := models.TableModelFromDomain(table)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a table
func (r *GormTableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TableModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toTables(tableModels []models.TableModel) []restaurant.Table {
	tables := make([]restaurant.Table, len(tableModels))
	for i, model := range tableModels {
		tables[i] = *model.ToDomain()
	}
	return tables
}

var _ restaurant.TableRepository = (*GormTableRepository)(nil)

// GormReservationRepository implements restaurant.ReservationRepository using GORM
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// FindByID finds a reservation by ID
func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*restaurant.Reservation, error) {
	var model models.ReservationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds reservations matching the filter
func (r *GormReservationRepository) FindAll(ctx context.Context, filter restaurant.ReservationFilter) ([]restaurant.Reservation, error) {
	var reservationModels []models.ReservationModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReservationModel{}), filter)
	query = applyListOptions(query, filter.Filter, "reserved_for ASC")

	if err := query.Find(&reservationModels).Error; err != nil {
		return nil, err
	}

	reservations := make([]restaurant.Reservation, len(reservationModels))
	for i, model := range reservationModels {
		reservations[i] = *model.ToDomain()
	}
	return reservations, nil
}

// Count counts reservations matching the filter
func (r *GormReservationRepository) Count(ctx context.Context, filter restaurant.ReservationFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReservationModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindOpenByTable finds pending or confirmed reservations on a table
// whose time falls within the window around the given moment. Used to
// detect booking conflicts.
func (r *GormReservationRepository) FindOpenByTable(ctx context.Context, tableID uuid.UUID, around time.Time, window time.Duration) ([]restaurant.Reservation, error) {
	var reservationModels []models.ReservationModel
	from := around.Add(-window)
	to := around.Add(window)
	if err := r.db.WithContext(ctx).
		Where("table_id = ? AND status IN ?", tableID, []restaurant.ReservationStatus{
			restaurant.ReservationStatusPending,
			restaurant.ReservationStatusConfirmed,
		}).
		Where("reserved_for >= ? AND reserved_for <= ?", from, to).
		Order("reserved_for ASC").
		Find(&reservationModels).Error; err != nil {
		return nil, err
	}

	reservations := make([]restaurant.Reservation, len(reservationModels))
	for i, model := range reservationModels {
		reservations[i] = *model.ToDomain()
	}
	return reservations, nil
}

// Save creates or updates a reservation
func (r *GormReservationRepository) Save(ctx context.Context, reservation *restaurant.Reservation) error {
	model := models.ReservationModelFromDomain(reservation)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormReservationRepository) applyFilter(query *gorm.DB, filter restaurant.ReservationFilter) *gorm.DB {
	if filter.TableID != nil {
		query = query.Where("table_id = ?", *filter.TableID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("reserved_for >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("reserved_for < ?", *filter.To)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("guest_name ILIKE ? OR guest_phone ILIKE ?", pattern, pattern)
	}
	return query
}

var _ restaurant.ReservationRepository = (*GormReservationRepository)(nil)

// GormOrderRepository implements restaurant.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by ID with its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*restaurant.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an order by its consecutive number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, number string) (*restaurant.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("number = ?", strings.ToUpper(number)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter restaurant.OrderFilter) ([]restaurant.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	query = applyListOptions(query, filter.Filter, "opened_at DESC").Preload("Items")

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]restaurant.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter restaurant.OrderFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindOpenByTable finds the open order on a table, if any
func (r *GormOrderRepository) FindOpenByTable(ctx context.Context, tableID uuid.UUID) (*restaurant.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("table_id = ? AND status = ?", tableID, restaurant.OrderStatusOpen).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists the order and replaces its lines
func (r *GormOrderRepository) Save(ctx context.Context, order *restaurant.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.OrderItemModel{}, "order_id = ?", order.ID).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter restaurant.OrderFilter) *gorm.DB {
	if filter.TableID != nil {
		query = query.Where("table_id = ?", *filter.TableID)
	}
	if filter.WaiterID != nil {
		query = query.Where("waiter_id = ?", *filter.WaiterID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("opened_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("opened_at < ?", *filter.To)
	}
	if filter.Search != "" {
		query = query.Where("number ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

var _ restaurant.OrderRepository = (*GormOrderRepository)(nil)
