// Package repository is the persistence boundary. It is the only package
// that issues SQL, and it owns the two correctness-critical pieces of the
// system: atomic sr_no allocation and soft-delete visibility.
package repository

import (
	"context"
	"strings"
	"time"

	"example.com/acgl/services/inventory/internal/database"
	"example.com/acgl/services/inventory/internal/models"
	"example.com/acgl/services/inventory/internal/registry"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means the id has no active row.
	ErrNotFound = errors.New("record not found")
	// ErrConstraint means the store rejected the write, typically a foreign
	// key to a missing plant or department.
	ErrConstraint = errors.New("constraint violation")
	// ErrStoreUnavailable covers connectivity and other store-side failures.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrAllocationFailed means no sequence number could be produced; the
	// create is aborted as a whole.
	ErrAllocationFailed = errors.New("sequence allocation failed")
)

// Filters are the optional read-query parameters. All present filters are
// ANDed together; Search alone fans out (OR) across the entity's configured
// search columns.
type Filters struct {
	Search       string
	PlantID      *uint
	DepartmentID *uint
	// ScopePlantID is the implicit path filter for plant-scoped listings.
	ScopePlantID *uint
}

// Repository provides data access methods
type Repository interface {
	// Inventory record operations, generic over the schema registry
	CreateRecord(ctx context.Context, d registry.Descriptor, rec models.InventoryRecord) error
	UpdateRecord(ctx context.Context, d registry.Descriptor, id uint, rec models.InventoryRecord) error
	SoftDeleteRecord(ctx context.Context, d registry.Descriptor, id uint) error
	ListRecords(ctx context.Context, d registry.Descriptor, f Filters) ([]map[string]interface{}, error)
	CountActive(ctx context.Context, table string) (int64, error)

	// Reference entities
	ListPlants(ctx context.Context) ([]models.Plant, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	FindPlantByID(ctx context.Context, id uint) (*models.Plant, error)

	// Users
	FindActiveUserByUsername(ctx context.Context, username string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
}

// repo is an implementation of the Repository interface
type repo struct {
	db database.DB
}

// NewRepository creates a new repository instance
func NewRepository(db database.DB) Repository {
	return &repo{db: db}
}

// storeError keeps the sentinel in the chain so callers can errors.Is it
// while the message still carries the cause.
func storeError(sentinel error, err error) error {
	return errors.WithMessage(sentinel, err.Error())
}

func isConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint") || strings.Contains(msg, "foreign key")
}

func translateWriteError(err error) error {
	if isConstraintViolation(err) {
		return storeError(ErrConstraint, err)
	}
	return storeError(ErrStoreUnavailable, err)
}

// CreateRecord allocates the next sr_no for the record's scope and inserts
// the row, both inside one transaction. The counter row is mutated with a
// single UPDATE so concurrent creates in the same scope serialize on its
// row lock instead of racing a SELECT MAX.
func (r *repo) CreateRecord(ctx context.Context, d registry.Descriptor, rec models.InventoryRecord) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return storeError(ErrStoreUnavailable, err)
	}

	return gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextSequence(tx, d, rec.SequenceScope())
		if err != nil {
			return storeError(ErrAllocationFailed, err)
		}

		rec.SetSequence(seq)
		rec.Activate()

		if err := tx.Create(rec).Error; err != nil {
			return translateWriteError(err)
		}
		return nil
	})
}

// nextSequence returns the next sr_no for the entity/scope pair. The fast
// path is an atomic increment of the counter row; the first allocation in a
// scope seeds the counter from the highest sr_no ever issued, soft-deleted
// rows included, so numbers are never reused.
func nextSequence(tx *gorm.DB, d registry.Descriptor, scope *uint) (int64, error) {
	var scopeKey uint
	if scope != nil {
		scopeKey = *scope
	}

	var next int64
	res := tx.Raw(
		"UPDATE sequence_counters SET value = value + 1 WHERE entity = ? AND scope_key = ? RETURNING value",
		d.Table, scopeKey,
	).Scan(&next)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		return next, nil
	}

	// No counter yet for this scope. Table and column names below come from
	// the static registry, never from request input.
	query := "SELECT COALESCE(MAX(sr_no), 0) FROM " + d.Table
	args := []interface{}{}
	if scope != nil {
		query += " WHERE plant_id = ?"
		args = append(args, scopeKey)
	}

	var max int64
	if err := tx.Raw(query, args...).Scan(&max).Error; err != nil {
		return 0, err
	}

	// Two first-allocators can land here at once; the upsert resolves the
	// loser into an increment of the winner's row.
	res = tx.Raw(
		`INSERT INTO sequence_counters (entity, scope_key, value) VALUES (?, ?, ?)
		 ON CONFLICT (entity, scope_key) DO UPDATE SET value = sequence_counters.value + 1
		 RETURNING value`,
		d.Table, scopeKey, max+1,
	).Scan(&next)
	if res.Error != nil {
		return 0, res.Error
	}
	return next, nil
}

// UpdateRecord replaces the mutable columns of an active row. sr_no,
// created_by and is_active are not in any descriptor's update set, so a PUT
// can never renumber or resurrect a record.
func (r *repo) UpdateRecord(ctx context.Context, d registry.Descriptor, id uint, rec models.InventoryRecord) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return storeError(ErrStoreUnavailable, err)
	}

	res := gormDB.WithContext(ctx).
		Model(rec).
		Where("id = ? AND is_active = ?", id, true).
		Select(d.UpdateColumns).
		Updates(rec)
	if res.Error != nil {
		return translateWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDeleteRecord flips is_active off. The row and its sr_no stay behind.
func (r *repo) SoftDeleteRecord(ctx context.Context, d registry.Descriptor, id uint) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return storeError(ErrStoreUnavailable, err)
	}

	res := gormDB.WithContext(ctx).
		Table(d.Table).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return translateWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRecords composes and runs the read query for one collection: left
// joins for the reference names, active rows only, AND filters, OR search,
// fixed sr_no ordering. Every value is bound as a parameter.
func (r *repo) ListRecords(ctx context.Context, d registry.Descriptor, f Filters) ([]map[string]interface{}, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, storeError(ErrStoreUnavailable, err)
	}

	t := d.Table
	q := gormDB.WithContext(ctx).Table(t)

	selects := t + ".*"
	if d.HasPlant {
		selects += ", plants.name AS plant_name"
		q = q.Joins("LEFT JOIN plants ON plants.id = " + t + ".plant_id")
	}
	if d.HasDepartment {
		selects += ", departments.name AS department_name"
		q = q.Joins("LEFT JOIN departments ON departments.id = " + t + ".department_id")
	}

	q = q.Select(selects).Where(t+".is_active = ?", true)

	if f.ScopePlantID != nil {
		q = q.Where(t+".plant_id = ?", *f.ScopePlantID)
	}
	if f.PlantID != nil && d.HasPlant {
		q = q.Where(t+".plant_id = ?", *f.PlantID)
	}
	if f.DepartmentID != nil && d.HasDepartment {
		q = q.Where(t+".department_id = ?", *f.DepartmentID)
	}

	if f.Search != "" && len(d.SearchFields) > 0 {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		conds := make([]string, 0, len(d.SearchFields))
		args := make([]interface{}, 0, len(d.SearchFields))
		for _, col := range d.SearchFields {
			conds = append(conds, "LOWER("+t+"."+col+") LIKE ?")
			args = append(args, pattern)
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}

	direction := "DESC"
	if d.OrderAscending {
		direction = "ASC"
	}
	q = q.Order(t + ".sr_no " + direction)

	rows := make([]map[string]interface{}, 0)
	if err := q.Find(&rows).Error; err != nil {
		return nil, storeError(ErrStoreUnavailable, err)
	}
	return rows, nil
}

// CountActive counts the active rows of one table.
func (r *repo) CountActive(ctx context.Context, table string) (int64, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return 0, storeError(ErrStoreUnavailable, err)
	}

	var count int64
	if err := gormDB.WithContext(ctx).Table(table).Where("is_active = ?", true).Count(&count).Error; err != nil {
		return 0, storeError(ErrStoreUnavailable, err)
	}
	return count, nil
}

// Reference entity operations

func (r *repo) ListPlants(ctx context.Context) ([]models.Plant, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, storeError(ErrStoreUnavailable, err)
	}

	var plants []models.Plant
	if err := gormDB.WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&plants).Error; err != nil {
		return nil, storeError(ErrStoreUnavailable, err)
	}
	return plants, nil
}

func (r *repo) ListDepartments(ctx context.Context) ([]models.Department, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, storeError(ErrStoreUnavailable, err)
	}

	var departments []models.Department
	if err := gormDB.WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&departments).Error; err != nil {
		return nil, storeError(ErrStoreUnavailable, err)
	}
	return departments, nil
}

func (r *repo) FindPlantByID(ctx context.Context, id uint) (*models.Plant, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, storeError(ErrStoreUnavailable, err)
	}

	var plant models.Plant
	err = gormDB.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&plant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeError(ErrStoreUnavailable, err)
	}
	return &plant, nil
}

// User operations

func (r *repo) FindActiveUserByUsername(ctx context.Context, username string) (*models.User, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, storeError(ErrStoreUnavailable, err)
	}

	var user models.User
	err = gormDB.WithContext(ctx).Where("username = ? AND is_active = ?", username, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeError(ErrStoreUnavailable, err)
	}
	return &user, nil
}

// SaveUser inserts the user, or updates the existing row with the same
// username. Used by the seed command.
func (r *repo) SaveUser(ctx context.Context, user *models.User) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return storeError(ErrStoreUnavailable, err)
	}

	var existing models.User
	err = gormDB.WithContext(ctx).Where("username = ?", user.Username).First(&existing).Error
	if err == nil {
		user.ID = existing.ID
		if err := gormDB.WithContext(ctx).Save(user).Error; err != nil {
			return translateWriteError(err)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storeError(ErrStoreUnavailable, err)
	}

	if err := gormDB.WithContext(ctx).Create(user).Error; err != nil {
		return translateWriteError(err)
	}
	return nil
}
