package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&row).Error; err != nil {
		if notFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDomainUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var row userModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		if notFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDomainUser(row)
}

// CreateWithPaymentProfile inserts the user and its payment row in one
// transaction; the unique email index turns a racing duplicate into ErrConflict.
func (r *UserRepository) CreateWithPaymentProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := userModel{
		Email:       user.Email,
		Password:    user.PasswordHash,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		UserTypeID:  user.Role.Ordinal(),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrConflict
			}
			return err
		}
		payment := userPaymentModel{UserID: row.ID, CreatedAt: row.CreatedAt}
		return tx.Omit(clause.Associations).Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}
	return toDomainUser(row)
}

func (r *UserRepository) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	changes := map[string]any{}
	if patch.Email != "" {
		changes["email"] = patch.Email
	}
	if patch.Password != "" {
		changes["password"] = patch.Password
	}
	if patch.FirstName != "" {
		changes["first_name"] = patch.FirstName
	}
	if patch.LastName != "" {
		changes["last_name"] = patch.LastName
	}
	if patch.PhoneNumber != "" {
		changes["phone_number"] = patch.PhoneNumber
	}

	if len(changes) > 0 {
		changes["updated_at"] = time.Now().UTC()
		res := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				return nil, domain.ErrConflict
			}
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrNotFound
		}
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) SetRole(ctx context.Context, id int64, role domain.Role) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(map[string]any{
		"user_type_id": role.Ordinal(),
		"updated_at":   time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
