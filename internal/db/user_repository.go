package db

import (
	"database/sql"

	"github.com/ad/go-telegram-skills/internal/models"
)

type UserRepository struct {
	queue *DBQueue
}

func NewUserRepository(queue *DBQueue) *UserRepository {
	return &UserRepository{queue: queue}
}

// CreateOrUpdate refreshes the user's profile fields. saved_xp is
// deliberately left alone so an upsert never resets banked experience.
func (r *UserRepository) CreateOrUpdate(user *models.User) error {
	_, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		_, err := db.Exec(`
			INSERT INTO users (id, first_name, last_name, username)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				first_name = excluded.first_name,
				last_name = excluded.last_name,
				username = excluded.username
		`, user.ID, user.FirstName, user.LastName, user.Username)
		return nil, err
	})
	return err
}

func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	result, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		row := db.QueryRow(`
			SELECT id, first_name, last_name, username, saved_xp, created_at
			FROM users WHERE id = ?
		`, id)

		var user models.User
		var firstName, lastName, username sql.NullString
		err := row.Scan(&user.ID, &firstName, &lastName, &username, &user.SavedXP, &user.CreatedAt)
		if err != nil {
			return nil, err
		}
		user.FirstName = firstName.String
		user.LastName = lastName.String
		user.Username = username.String
		return &user, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.User), nil
}

func (r *UserRepository) IncrementSavedXP(userID int64, amount int) error {
	_, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		_, err := db.Exec(`
			UPDATE users SET saved_xp = saved_xp + ? WHERE id = ?
		`, amount, userID)
		return nil, err
	})
	return err
}

// TopByTotalXP returns the leaderboard ordered by saved XP plus the XP
// of the user's remaining skills.
func (r *UserRepository) TopByTotalXP(limit int) ([]*models.RatingEntry, error) {
	result, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		rows, err := db.Query(`
			SELECT users.id, users.username,
			       users.saved_xp + IFNULL(SUM(skills.xp), 0) AS total_xp
			FROM users
			LEFT JOIN skills ON skills.user_id = users.id
			GROUP BY users.id
			ORDER BY total_xp DESC
			LIMIT ?
		`, limit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var entries []*models.RatingEntry
		for rows.Next() {
			var entry models.RatingEntry
			var username sql.NullString
			if err := rows.Scan(&entry.UserID, &username, &entry.TotalXP); err != nil {
				return nil, err
			}
			entry.Username = username.String
			entries = append(entries, &entry)
		}
		return entries, rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result.([]*models.RatingEntry), nil
}
