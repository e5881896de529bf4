// Package commitment — repository.go выполняет операции с таблицами
// progress и commitments.
package commitment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"papyr.app/backend/internal/common"
)

// errDuplicateDay — в БД уже есть коммит на эту дату (уникальный индекс
// user_id + commitment_date). Так закрывается гонка двух устройств.
var errDuplicateDay = errors.New("коммит на эту дату уже существует")

// Repository предоставляет методы для работы с прогрессом и коммитами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий коммитов.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateProgress создаёт начальную запись прогресса для нового пользователя.
func (r *Repository) CreateProgress(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO progress (user_id, current_streak, longest_streak, jokers,
		                      total_commitments, has_paid, reminder_sent_today)
		VALUES ($1, 0, 0, 0, 0, FALSE, FALSE)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("ошибка создания прогресса: %w", err)
	}
	return nil
}

// GetProgress возвращает прогресс пользователя.
func (r *Repository) GetProgress(ctx context.Context, userID int64) (*Progress, error) {
	query := `
		SELECT id, user_id, current_streak, longest_streak, jokers,
		       last_commitment_date, total_commitments, has_paid,
		       reminder_sent_today, created_at, updated_at
		FROM progress
		WHERE user_id = $1
	`
	var p Progress
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.CurrentStreak, &p.LongestStreak, &p.Jokers,
		&p.LastCommitmentDate, &p.TotalCommitments, &p.HasPaid,
		&p.ReminderSentToday, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("прогресс не найден (user_id=%d): %w", userID, err)
	}
	return &p, nil
}

// AcceptCommitment атомарно фиксирует принятый коммит: вставляет строку
// в commitments и обновляет прогресс в ОДНОЙ транзакции.
// Уникальный индекс (user_id, commitment_date) гарантирует «не больше
// одного коммита в день» даже при гонке двух устройств.
func (r *Repository) AcceptCommitment(ctx context.Context, c *Commitment, ledger LedgerResult, longestStreak int) error {
	goalsJSON, err := json.Marshal(c.Goals)
	if err != nil {
		return fmt.Errorf("ошибка сериализации целей: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO commitments (uid, user_id, commitment_date, photo_url,
		                         goals, joker_consumed, streak_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, insert,
		c.UID, c.UserID, c.CommitmentDate, c.PhotoURL,
		goalsJSON, c.JokerConsumed, c.StreakAfter,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation: второе устройство успело раньше
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return errDuplicateDay
		}
		return fmt.Errorf("ошибка вставки коммита: %w", err)
	}

	update := `
		UPDATE progress
		SET current_streak = $2, longest_streak = $3, jokers = $4,
		    last_commitment_date = $5, total_commitments = total_commitments + 1,
		    updated_at = NOW()
		WHERE user_id = $1
	`
	if _, err := tx.Exec(ctx, update,
		c.UserID, ledger.NewStreak, longestStreak, ledger.NewJokers, c.CommitmentDate,
	); err != nil {
		return fmt.Errorf("ошибка обновления прогресса: %w", err)
	}

	return tx.Commit(ctx)
}

// ListByUser возвращает коммиты пользователя, свежие первыми.
// limit <= 0 означает «без ограничения».
func (r *Repository) ListByUser(ctx context.Context, userID int64, limit int) ([]*Commitment, error) {
	query := `
		SELECT id, uid, user_id, commitment_date, photo_url, goals,
		       joker_consumed, streak_after, created_at
		FROM commitments
		WHERE user_id = $1
		ORDER BY commitment_date DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения коммитов: %w", err)
	}
	defer rows.Close()

	var list []*Commitment
	for rows.Next() {
		var c Commitment
		var goalsJSON []byte
		err := rows.Scan(
			&c.ID, &c.UID, &c.UserID, &c.CommitmentDate, &c.PhotoURL,
			&goalsJSON, &c.JokerConsumed, &c.StreakAfter, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования: %w", err)
		}
		if err := json.Unmarshal(goalsJSON, &c.Goals); err != nil {
			return nil, fmt.Errorf("ошибка разбора целей: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// MarkPaid разблокирует архив после успешной оплаты.
func (r *Repository) MarkPaid(ctx context.Context, userID int64) error {
	query := `UPDATE progress SET has_paid = TRUE, updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("ошибка разблокировки архива: %w", err)
	}
	return nil
}

// ReminderCandidate — пользователь, которому стоит напомнить про окно.
type ReminderCandidate struct {
	UserID         int64
	CurrentStreak  int
	TelegramChatID int64
}

// GetReminderCandidates возвращает пользователей со стриком >= minStreak,
// которые сегодня ещё не коммитили и не получали напоминание.
// Берём только тех, у кого привязан Telegram — остальным слать некуда.
func (r *Repository) GetReminderCandidates(ctx context.Context, minStreak int, today time.Time) ([]ReminderCandidate, error) {
	query := `
		SELECT p.user_id, p.current_streak, u.telegram_chat_id
		FROM progress p
		JOIN users u ON u.id = p.user_id
		WHERE p.current_streak >= $1
		  AND p.reminder_sent_today = FALSE
		  AND (p.last_commitment_date IS NULL OR p.last_commitment_date < $2)
		  AND u.telegram_chat_id IS NOT NULL
	`
	rows, err := r.db.Query(ctx, query, minStreak, today)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки кандидатов на напоминание: %w", err)
	}
	defer rows.Close()

	var out []ReminderCandidate
	for rows.Next() {
		var c ReminderCandidate
		if err := rows.Scan(&c.UserID, &c.CurrentStreak, &c.TelegramChatID); err != nil {
			return nil, fmt.Errorf("ошибка сканирования: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// MarkReminderSent помечает, что напоминание уже отправлено сегодня.
func (r *Repository) MarkReminderSent(ctx context.Context, userID int64) error {
	query := `UPDATE progress SET reminder_sent_today = TRUE WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

// ResetDailyFlags сбрасывает дневные флаги у всех пользователей.
// Вызывается кроном после закрытия окна.
func (r *Repository) ResetDailyFlags(ctx context.Context) error {
	query := `UPDATE progress SET reminder_sent_today = FALSE, updated_at = NOW()`
	_, err := r.db.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("ошибка сброса дневных флагов: %w", err)
	}
	return nil
}
