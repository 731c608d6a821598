package repositories

import (
	"context"

	"library-desk/internal/adapters/persistence/storage"
	"library-desk/internal/core/domain"
)

// jsonMemberRepository implements MemberRepository on top of the library blob
type jsonMemberRepository struct {
	store *storage.LibraryStore
}

// NewJSONMemberRepository creates a member repository backed by the library blob
func NewJSONMemberRepository(store *storage.LibraryStore) MemberRepository {
	return &jsonMemberRepository{store: store}
}

func (r *jsonMemberRepository) Create(ctx context.Context, member *domain.Member) error {
	return r.store.Update(func(s *storage.Snapshot) error {
		m := *member
		s.Members = append(s.Members, &m)
		return nil
	})
}

func (r *jsonMemberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	snap, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for _, m := range snap.Members {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *jsonMemberRepository) GetAll(ctx context.Context) ([]*domain.Member, error) {
	snap, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	if snap.Members == nil {
		return []*domain.Member{}, nil
	}
	return snap.Members, nil
}

// List returns one page of members plus the total count
func (r *jsonMemberRepository) List(ctx context.Context, offset, limit int) ([]*domain.Member, int64, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	total := int64(len(all))
	if offset >= len(all) {
		return []*domain.Member{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *jsonMemberRepository) Update(ctx context.Context, member *domain.Member) error {
	return r.store.Update(func(s *storage.Snapshot) error {
		for i, m := range s.Members {
			if m.ID == member.ID {
				updated := *member
				s.Members[i] = &updated
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *jsonMemberRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, err := r.GetByID(ctx, id)
	if err == domain.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *jsonMemberRepository) Count(ctx context.Context) (int64, error) {
	snap, err := r.store.Load()
	if err != nil {
		return 0, err
	}
	return int64(len(snap.Members)), nil
}

func (r *jsonMemberRepository) DeleteAll(ctx context.Context) error {
	return r.store.Update(func(s *storage.Snapshot) error {
		s.Members = nil
		return nil
	})
}
