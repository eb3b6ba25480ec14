package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/agrigo/services/marketplace-api/internal/domain"
)

const resourceNotFound = "Resource not found"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type ResourceFilter struct {
	Location     string // case-insensitive substring
	Type         string
	ProviderID   string
	Availability domain.Availability
}

type ResourceRepo struct {
	db *gorm.DB
}

func NewResourceRepo(db *gorm.DB) *ResourceRepo {
	return &ResourceRepo{db: db}
}

func (r *ResourceRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Resource{})
}

func (r *ResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	return storeErr("create resource", resourceNotFound, r.db.WithContext(ctx).Create(res).Error)
}

func (r *ResourceRepo) ByID(ctx context.Context, id string) (*domain.Resource, error) {
	var res domain.Resource
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		return nil, storeErr("get resource", resourceNotFound, err)
	}
	return &res, nil
}

func (r *ResourceRepo) List(ctx context.Context, f ResourceFilter) ([]domain.Resource, error) {
	qb := r.db.WithContext(ctx).Model(&domain.Resource{})
	if loc := strings.TrimSpace(f.Location); loc != "" {
		qb = qb.Where(`LOWER(location) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(loc))+"%")
	}
	if f.Type != "" {
		qb = qb.Where("type = ?", f.Type)
	}
	if f.ProviderID != "" {
		qb = qb.Where("provider_id = ?", f.ProviderID)
	}
	if f.Availability != "" {
		qb = qb.Where("availability = ?", f.Availability)
	}
	out := []domain.Resource{}
	if err := qb.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, storeErr("list resources", resourceNotFound, err)
	}
	return out, nil
}

// TopAvailable returns the highest-priced available listings.
func (r *ResourceRepo) TopAvailable(ctx context.Context, limit int) ([]domain.Resource, error) {
	out := []domain.Resource{}
	err := r.db.WithContext(ctx).
		Where("availability = ?", domain.Available).
		Order("price DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, storeErr("list resources", resourceNotFound, err)
	}
	return out, nil
}

func (r *ResourceRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.Resource, error) {
	fields["updated_at"] = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&domain.Resource{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, storeErr("update resource", resourceNotFound, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, storeErr("update resource", resourceNotFound, gorm.ErrRecordNotFound)
	}
	return r.ByID(ctx, id)
}

func (r *ResourceRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Resource{}, "id = ?", id)
	if res.Error != nil {
		return storeErr("delete resource", resourceNotFound, res.Error)
	}
	if res.RowsAffected == 0 {
		return storeErr("delete resource", resourceNotFound, gorm.ErrRecordNotFound)
	}
	return nil
}
