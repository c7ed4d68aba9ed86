package repository

import (
	"time"

	"tryout_prep_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// CreateIgnoreConflict inserts the attempt row, relying on the unique
// (user_id, tryout_id) index as the concurrency boundary: when an attempt
// already exists the insert is a no-op and created is false. Callers must not
// pre-check existence — two concurrent starts would both pass such a check.
func (r *AttemptRepository) CreateIgnoreConflict(attempt *model.TryoutAttempt) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "tryout_id"}},
		DoNothing: true,
	}).Create(attempt)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AttemptRepository) FindByTryoutAndUser(tryoutID, userID uint) (*model.TryoutAttempt, error) {
	var a model.TryoutAttempt
	err := r.DB.Where("tryout_id = ? AND user_id = ?", tryoutID, userID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Finish marks the matching attempt finished with the given completion time.
// The update is unconditional on status: resubmitting a finished attempt
// succeeds again and refreshes completed_at. Returns the number of rows
// touched so the caller can distinguish "no such attempt".
func (r *AttemptRepository) Finish(tryoutID, userID uint, completedAt time.Time) (int64, error) {
	res := r.DB.Model(&model.TryoutAttempt{}).
		Where("tryout_id = ? AND user_id = ?", tryoutID, userID).
		Updates(map[string]interface{}{
			"status":       model.AttemptFinished,
			"completed_at": completedAt,
		})
	return res.RowsAffected, res.Error
}

// UpsertAnswer writes the selected option for (attempt, question) as a single
// atomic insert-or-update; a repeated save overwrites the prior selection.
func (r *AttemptRepository) UpsertAnswer(answer *model.TryoutUserAnswer) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"selected_answer_id"}),
	}).Create(answer).Error
}

func (r *AttemptRepository) ListByUser(userID uint) ([]model.TryoutAttempt, error) {
	var attempts []model.TryoutAttempt
	err := r.DB.Where("user_id = ?", userID).Order("started_at desc").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) GetAnswers(attemptID uint) ([]model.TryoutUserAnswer, error) {
	var answers []model.TryoutUserAnswer
	err := r.DB.Where("attempt_id = ?", attemptID).Find(&answers).Error
	return answers, err
}
