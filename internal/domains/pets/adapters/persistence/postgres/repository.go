package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

var (
	_ ports.Repository     = (*Repository)(nil)
	_ ports.SnapshotReader = (*Repository)(nil)
)

// Repository persists listings in PostgreSQL using GORM. The schema is owned by
// the platform migrations; the caller owns the DB lifecycle.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ReadSnapshot runs fn inside a read-only repeatable-read transaction so the
// count and the page are computed against the same data.
func (r *Repository) ReadSnapshot(ctx context.Context, fn func(ports.SearchRepository) error) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
}

// Count returns the number of pets satisfying every predicate.
func (r *Repository) Count(ctx context.Context, query pettypes.SearchQuery) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	scope, err := searchScope(query)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&petRecord{}).Scopes(scope).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Find returns one window of matches ordered by id, with owner, species,
// breed and tags loaded.
func (r *Repository) Find(ctx context.Context, query pettypes.SearchQuery, page pettypes.PageRequest) ([]*domain.Pet, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	scope, err := searchScope(query)
	if err != nil {
		return nil, err
	}
	var records []petRecord
	if err := r.withRelations(r.db.WithContext(ctx)).
		Model(&petRecord{}).
		Scopes(scope).
		Order("pets.id ASC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&records).Error; err != nil {
		return nil, err
	}
	pets := make([]*domain.Pet, 0, len(records))
	for i := range records {
		pets = append(pets, records[i].toDomain())
	}
	return pets, nil
}

// Save inserts a listing and its tag links in one transaction.
func (r *Repository) Save(ctx context.Context, pet *domain.Pet) (*domain.Pet, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	record := newPetRecord(pet)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&record).Error; err != nil {
			return err
		}
		links := petTagLinks(record.ID, pet.Tags)
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, fmt.Errorf("%w: %v", ports.ErrUnknownReference, err)
		}
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a listing by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.withRelations(r.db.WithContext(ctx)).First(&record, "pets.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// MarkAdopted flags the listing as adopted.
func (r *Repository) MarkAdopted(ctx context.Context, id int64) (*domain.Pet, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&petRecord{}).Where("id = ?", id).Update("is_adopted", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// GetOwner resolves a listing owner.
func (r *Repository) GetOwner(ctx context.Context, id int64) (domain.Owner, error) {
	var record userRecord
	if err := r.first(ctx, &record, id, "owner"); err != nil {
		return domain.Owner{}, err
	}
	return record.toDomain(), nil
}

// GetSpecies resolves a species.
func (r *Repository) GetSpecies(ctx context.Context, id int64) (domain.Species, error) {
	var record speciesRecord
	if err := r.first(ctx, &record, id, "species"); err != nil {
		return domain.Species{}, err
	}
	return record.toDomain(), nil
}

// GetBreed resolves a breed.
func (r *Repository) GetBreed(ctx context.Context, id int64) (domain.Breed, error) {
	var record breedRecord
	if err := r.first(ctx, &record, id, "breed"); err != nil {
		return domain.Breed{}, err
	}
	return record.toDomain(), nil
}

// GetTags resolves every id, preserving the requested order.
func (r *Repository) GetTags(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Tag{}, nil
	}
	var records []tagRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]tagRecord, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	tags := make([]domain.Tag, 0, len(ids))
	for _, id := range ids {
		rec, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: tag %d", ports.ErrUnknownReference, id)
		}
		tags = append(tags, rec.toDomain())
	}
	return tags, nil
}

// ListTags returns tags ordered by id, optionally filtered by category.
func (r *Repository) ListTags(ctx context.Context, category *domain.TagCategory) ([]domain.Tag, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx).Order("id ASC")
	if category != nil {
		db = db.Where("category = ?", string(*category))
	}
	var records []tagRecord
	if err := db.Find(&records).Error; err != nil {
		return nil, err
	}
	tags := make([]domain.Tag, 0, len(records))
	for _, rec := range records {
		tags = append(tags, rec.toDomain())
	}
	return tags, nil
}

func (r *Repository) first(ctx context.Context, dest any, id int64, kind string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s %d", ports.ErrUnknownReference, kind, id)
		}
		return err
	}
	return nil
}

func (r *Repository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner").
		Preload("Species").
		Preload("Breed").
		Preload("Tags")
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}
