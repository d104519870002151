package db

import (
	"database/sql"

	"github.com/ad/go-telegram-skills/internal/models"
)

type SkillRepository struct {
	queue *DBQueue
}

func NewSkillRepository(queue *DBQueue) *SkillRepository {
	return &SkillRepository{queue: queue}
}

func (r *SkillRepository) Create(userID int64, name string) (int64, error) {
	result, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		res, err := db.Exec(`
			INSERT INTO skills (user_id, name, xp) VALUES (?, ?, 0)
		`, userID, name)
		if err != nil {
			return nil, err
		}
		return res.LastInsertId()
	})
	if err != nil {
		return 0, err
	}
	return result.(int64), nil
}

func (r *SkillRepository) ListByUser(userID int64) ([]*models.Skill, error) {
	result, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		rows, err := db.Query(`
			SELECT id, user_id, name, xp, created_at
			FROM skills WHERE user_id = ? ORDER BY id
		`, userID)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var skills []*models.Skill
		for rows.Next() {
			var skill models.Skill
			if err := rows.Scan(&skill.ID, &skill.UserID, &skill.Name, &skill.XP, &skill.CreatedAt); err != nil {
				return nil, err
			}
			skills = append(skills, &skill)
		}
		return skills, rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result.([]*models.Skill), nil
}

// GetByID returns sql.ErrNoRows when the skill was deleted in the
// meantime, e.g. from a stale menu.
func (r *SkillRepository) GetByID(id int64) (*models.Skill, error) {
	result, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		row := db.QueryRow(`
			SELECT id, user_id, name, xp, created_at
			FROM skills WHERE id = ?
		`, id)

		var skill models.Skill
		err := row.Scan(&skill.ID, &skill.UserID, &skill.Name, &skill.XP, &skill.CreatedAt)
		if err != nil {
			return nil, err
		}
		return &skill, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Skill), nil
}

func (r *SkillRepository) UpdateXP(id int64, xp int) error {
	_, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		_, err := db.Exec(`UPDATE skills SET xp = ? WHERE id = ?`, xp, id)
		return nil, err
	})
	return err
}

func (r *SkillRepository) Rename(id int64, name string) error {
	_, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		_, err := db.Exec(`UPDATE skills SET name = ? WHERE id = ?`, name, id)
		return nil, err
	})
	return err
}

func (r *SkillRepository) Delete(id int64) error {
	_, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		_, err := db.Exec(`DELETE FROM skills WHERE id = ?`, id)
		return nil, err
	})
	return err
}

func (r *SkillRepository) CountByUser(userID int64) (int, error) {
	result, err := r.queue.Execute(func(db *sql.DB) (interface{}, error) {
		row := db.QueryRow(`SELECT COUNT(*) FROM skills WHERE user_id = ?`, userID)
		var count int
		if err := row.Scan(&count); err != nil {
			return nil, err
		}
		return count, nil
	})
	if err != nil {
		return 0, err
	}
	return result.(int), nil
}
