package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/agrigo/services/marketplace-api/internal/domain"
)

const userNotFound = "User not found"

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.User{}, &domain.Credential{})
}

// CreateWithCredential inserts the profile and its password credential atomically.
func (r *UserRepo) CreateWithCredential(ctx context.Context, u *domain.User, passwordHash string) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cred := &domain.Credential{UserID: u.ID, Email: u.Email, PasswordHash: passwordHash}
		if err := tx.Create(cred).Error; err != nil {
			return err
		}
		return tx.Create(u).Error
	})
	return storeErr("create user", userNotFound, err)
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, storeErr("get user", userNotFound, err)
	}
	return &u, nil
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, storeErr("get user", userNotFound, err)
	}
	return &u, nil
}

func (r *UserRepo) CredentialByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	var c domain.Credential
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error; err != nil {
		return nil, storeErr("get credential", userNotFound, err)
	}
	return &c, nil
}

// UpdateProfile applies name/email changes; an email change is mirrored onto
// the credential so sign-in follows it.
func (r *UserRepo) UpdateProfile(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.User{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if email, ok := fields["email"]; ok {
			return tx.Model(&domain.Credential{}).Where("user_id = ?", id).Update("email", email).Error
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("update user", userNotFound, err)
	}
	return r.ByID(ctx, id)
}
