package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/agrigo/pkg/apperr"
	"github.com/you/agrigo/services/marketplace-api/internal/domain"
)

const bookingNotFound = "Booking not found"

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Booking{})
}

// Create inserts the booking row only; the resource snapshot is never written.
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
	return storeErr("create booking", bookingNotFound, err)
}

func (r *BookingRepo) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Preload("Resource").First(&b, "id = ?", id).Error; err != nil {
		return nil, storeErr("get booking", bookingNotFound, err)
	}
	return &b, nil
}

func (r *BookingRepo) ListByFarmer(ctx context.Context, farmerID string) ([]domain.Booking, error) {
	out := []domain.Booking{}
	err := r.db.WithContext(ctx).
		Preload("Resource").
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, storeErr("list bookings", bookingNotFound, err)
	}
	return out, nil
}

// ListByProvider joins through resources to find bookings on the provider's listings.
func (r *BookingRepo) ListByProvider(ctx context.Context, providerID string) ([]domain.Booking, error) {
	out := []domain.Booking{}
	err := r.db.WithContext(ctx).
		Select("bookings.*").
		Joins("JOIN resources ON resources.id = bookings.resource_id").
		Where("resources.provider_id = ?", providerID).
		Preload("Resource").
		Order("bookings.created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, storeErr("list bookings", bookingNotFound, err)
	}
	return out, nil
}

func (r *BookingRepo) CountByResource(ctx context.Context, resourceID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("resource_id = ?", resourceID).Count(&n).Error
	if err != nil {
		return 0, storeErr("count bookings", bookingNotFound, err)
	}
	return n, nil
}

// CompareAndSetStatus moves the booking from `from` to `to` only if its
// status is still `from`. A lost race surfaces as Conflict.
func (r *BookingRepo) CompareAndSetStatus(ctx context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, storeErr("update booking", bookingNotFound, res.Error)
	}
	if res.RowsAffected == 0 {
		cur, err := r.ByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, apperr.Conflictf("Booking status changed concurrently (now %s)", cur.Status)
	}
	return r.ByID(ctx, id)
}

func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Booking{}, "id = ?", id)
	if res.Error != nil {
		return storeErr("delete booking", bookingNotFound, res.Error)
	}
	if res.RowsAffected == 0 {
		return storeErr("delete booking", bookingNotFound, gorm.ErrRecordNotFound)
	}
	return nil
}
