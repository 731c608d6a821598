package repositories

import (
	"context"
	"errors"

	"library-desk/internal/adapters/persistence/models"
	"library-desk/internal/core/domain"

	"gorm.io/gorm"
)

// memberRepository implements MemberRepository interface on MySQL
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new member
func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	return r.db.WithContext(ctx).Create(models.MemberFromDomain(member)).Error
}

// GetByID gets a member by ID
func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return member.ToDomain(), nil
}

// GetAll lists every member in registration order
func (r *memberRepository) GetAll(ctx context.Context) ([]*domain.Member, error) {
	var rows []*models.Member
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainMembers(rows), nil
}

// List lists members with pagination
func (r *memberRepository) List(ctx context.Context, offset, limit int) ([]*domain.Member, int64, error) {
	var rows []*models.Member
	var total int64

	// Count total
	if err := r.db.WithContext(ctx).Model(&models.Member{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get members with pagination
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return toDomainMembers(rows), total, nil
}

// Update updates a member
func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	result := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", member.ID).
		Updates(map[string]interface{}{
			"name":  member.Name,
			"email": member.Email,
			"fees":  member.Fees,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsByID checks if a member ID exists
func (r *memberRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// Count counts all members
func (r *memberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).Count(&count).Error
	return count, err
}

// DeleteAll removes every member
func (r *memberRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Member{}).Error
}

func toDomainMembers(rows []*models.Member) []*domain.Member {
	members := make([]*domain.Member, len(rows))
	for i, row := range rows {
		members[i] = row.ToDomain()
	}
	return members
}
