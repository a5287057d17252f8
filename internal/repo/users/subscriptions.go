package users

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/repo"
)

// Subscribe подписывает userID на authorID. Повторная подписка: ErrAlreadyExists.
func (s *Store) Subscribe(ctx context.Context, userID, authorID int64) error {
	sqlStr, args, err := s.db.SQ().
		Insert(subscriptionsTable).
		Columns("user_id", "author_id").
		Values(userID, authorID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build subscribe: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if repo.IsUniqueViolation(err) {
			return models.ErrAlreadyExists
		}
		if repo.IsForeignKeyViolation(err) {
			return models.ErrNotFound
		}
		return fmt.Errorf("subscribe: %w", err)
	}
	return nil
}

// Unsubscribe удаляет подписку. Если её не было: ErrNotExists.
func (s *Store) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	sqlStr, args, err := s.db.SQ().
		Delete(subscriptionsTable).
		Where(sq.Eq{"user_id": userID, "author_id": authorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build unsubscribe: %w", err)
	}

	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotExists
	}
	return nil
}

// SubscribedTo возвращает множество авторов из authorIDs, на которых подписан userID.
func (s *Store) SubscribedTo(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(authorIDs))
	if userID == 0 || len(authorIDs) == 0 {
		return out, nil
	}

	sqlStr, args, err := s.db.SQ().
		Select("author_id").
		From(subscriptionsTable).
		Where(sq.Eq{"user_id": userID, "author_id": authorIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build subscribed query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("subscribed query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

// Subscriptions авторы, на которых подписан userID, постранично по id автора.
func (s *Store) Subscriptions(ctx context.Context, userID int64, limit, offset int) ([]models.User, int, error) {
	total, err := s.count(ctx, s.db.SQ().
		Select("COUNT(*)").
		From(subscriptionsTable).
		Where(sq.Eq{"user_id": userID}))
	if err != nil {
		return nil, 0, err
	}

	cols := make([]string, len(userColumns))
	for i, c := range userColumns {
		cols[i] = "u." + c
	}

	sqlStr, args, err := s.db.SQ().
		Select(cols...).
		From(usersTable+" u").
		Join(subscriptionsTable+" s ON s.author_id = u.id").
		Where(sq.Eq{"s.user_id": userID}).
		OrderBy("u.id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build subscriptions: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("subscriptions: %w", err)
	}
	list, err := scanUsers(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("scan subscriptions: %w", err)
	}
	return list, total, nil
}
