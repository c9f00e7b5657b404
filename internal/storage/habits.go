package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/brightwell/internal/models"
)

const habitColumns = "id, name, description, icon, created_at, deleted_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var createdAt string
	var deletedAt sql.NullString

	if err := row.Scan(&h.ID, &h.Name, &h.Description, &h.Icon, &createdAt, &deletedAt); err != nil {
		return models.Habit{}, err
	}

	var err error
	h.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	if deletedAt.Valid {
		t, err := parseTimestamp(deletedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse deleted_at for habit %s: %w", h.ID, err)
		}
		h.DeletedAt = &t
	}
	h.CompletionDates = models.DaySet{}
	return h, nil
}

func (s *SQLiteStore) loadCompletions(h *models.Habit) error {
	rows, err := s.db.Query("SELECT day FROM habit_completions WHERE habit_id = ?", h.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return err
		}
		h.CompletionDates[day] = struct{}{}
	}
	return rows.Err()
}

func (s *SQLiteStore) nameTaken(name, exceptID string) (bool, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM habits
		WHERE lower(trim(name)) = lower(trim(?)) AND id != ? AND deleted_at IS NULL`,
		name, exceptID).Scan(&count)
	return count > 0, err
}

// AddHabit inserts a new habit. Names must be unique among live habits.
func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	taken, err := s.nameTaken(habit.Name, habit.ID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %s", ErrDuplicateName, habit.Name)
	}
	return s.UpdateHabit(habit)
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	h, err := scanHabit(s.db.QueryRow(
		"SELECT "+habitColumns+" FROM habits WHERE id = ? AND deleted_at IS NULL", id))
	if err != nil {
		return models.Habit{}, notFound(err)
	}
	if err := s.loadCompletions(&h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (s *SQLiteStore) GetHabitByName(name string) (models.Habit, error) {
	h, err := scanHabit(s.db.QueryRow(
		"SELECT "+habitColumns+" FROM habits WHERE lower(trim(name)) = lower(trim(?)) AND deleted_at IS NULL", name))
	if err != nil {
		return models.Habit{}, notFound(err)
	}
	if err := s.loadCompletions(&h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (s *SQLiteStore) GetAllHabits(includeDeleted bool) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits"
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY created_at, name"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}

	var habits []models.Habit
	index := make(map[string]int)
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		index[h.ID] = len(habits)
		habits = append(habits, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// With a single connection the habits cursor must be closed before this query.
	completions, err := s.db.Query("SELECT habit_id, day FROM habit_completions")
	if err != nil {
		return nil, err
	}
	defer completions.Close()

	for completions.Next() {
		var habitID, day string
		if err := completions.Scan(&habitID, &day); err != nil {
			return nil, err
		}
		if i, ok := index[habitID]; ok {
			habits[i].CompletionDates[day] = struct{}{}
		}
	}
	return habits, completions.Err()
}

// UpdateHabit upserts the habit row and replaces its completion set.
func (s *SQLiteStore) UpdateHabit(habit models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO habits (id, name, description, icon, created_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			icon = excluded.icon,
			deleted_at = excluded.deleted_at`,
		habit.ID, habit.Name, habit.Description, habit.Icon,
		formatTimestamp(habit.CreatedAt), nullTimestamp(habit.DeletedAt))
	if err != nil {
		return fmt.Errorf("failed to save habit: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM habit_completions WHERE habit_id = ?", habit.ID); err != nil {
		return fmt.Errorf("failed to clear completions: %w", err)
	}
	for day := range habit.CompletionDates {
		if _, err := tx.Exec("INSERT INTO habit_completions (habit_id, day) VALUES (?, ?)", habit.ID, day); err != nil {
			return fmt.Errorf("failed to save completion %s: %w", day, err)
		}
	}
	return tx.Commit()
}

// ToggleHabitCompletion flips one day for a live habit and returns the new state.
func (s *SQLiteStore) ToggleHabitCompletion(id, day string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var live int
	if err := tx.QueryRow("SELECT COUNT(*) FROM habits WHERE id = ? AND deleted_at IS NULL", id).Scan(&live); err != nil {
		return false, err
	}
	if live == 0 {
		return false, ErrNotFound
	}

	result, err := tx.Exec("DELETE FROM habit_completions WHERE habit_id = ? AND day = ?", id, day)
	if err != nil {
		return false, err
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if removed == 0 {
		if _, err := tx.Exec("INSERT INTO habit_completions (habit_id, day) VALUES (?, ?)", id, day); err != nil {
			return false, err
		}
	}
	return removed == 0, tx.Commit()
}

// DeleteHabit soft-deletes a habit; its completions are kept for RestoreHabit.
func (s *SQLiteStore) DeleteHabit(id string) error {
	return affectedOne(s.db.Exec(
		"UPDATE habits SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		formatTimestamp(time.Now()), id))
}

func (s *SQLiteStore) RestoreHabit(id string) error {
	var name string
	err := s.db.QueryRow("SELECT name FROM habits WHERE id = ? AND deleted_at IS NOT NULL", id).Scan(&name)
	if err != nil {
		return notFound(err)
	}
	taken, err := s.nameTaken(name, id)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	return affectedOne(s.db.Exec("UPDATE habits SET deleted_at = NULL WHERE id = ?", id))
}
