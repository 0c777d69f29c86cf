package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// ResetCodeRepository implements ports.ResetCodeRepository over password_resets.
type ResetCodeRepository struct {
	db *gorm.DB
}

func NewResetCodeRepository(db *gorm.DB) *ResetCodeRepository {
	return &ResetCodeRepository{db: db}
}

func (r *ResetCodeRepository) Create(ctx context.Context, code *domain.ResetCode) error {
	row := passwordResetModel{UserID: code.UserID, Code: code.Code, Validated: code.Validated, CreatedAt: code.CreatedAt}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return err
	}
	code.ID = row.ID
	return nil
}

// MarkValidated locks the newest row carrying code and sets validated.
func (r *ResetCodeRepository) MarkValidated(ctx context.Context, code string) (*domain.ResetCode, error) {
	var row passwordResetModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := forUpdate(tx).
			Where("code = ?", code).
			Order("created_at DESC").
			Order("id DESC").
			Take(&row).Error
		if err != nil {
			return err
		}
		row.Validated = true
		return tx.Model(&passwordResetModel{}).Where("id = ?", row.ID).Update("validated", true).Error
	})
	if err != nil {
		if notFound(err) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, err
	}
	return toDomainResetCode(row), nil
}

func (r *ResetCodeRepository) LatestForUser(ctx context.Context, userID int64) (*domain.ResetCode, error) {
	var row passwordResetModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Take(&row).Error
	if err != nil {
		if notFound(err) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, err
	}
	return toDomainResetCode(row), nil
}

// ConsumeWithPassword deletes the validated code and writes the new hash in
// one transaction. A code consumed concurrently reports ErrCodeNotFound.
func (r *ResetCodeRepository) ConsumeWithPassword(ctx context.Context, codeID, userID int64, passwordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND validated = ?", codeID, true).Delete(&passwordResetModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrCodeNotFound
		}
		res = tx.Model(&userModel{}).Where("id = ?", userID).Update("password", passwordHash)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
