package repository

import (
	"time"

	"tryout_prep_backend/internal/model"

	"gorm.io/gorm"
)

type TryoutRepository struct {
	DB *gorm.DB
}

func NewTryoutRepository(db *gorm.DB) *TryoutRepository {
	return &TryoutRepository{DB: db}
}

// TryoutListRow is one row of the catalog listing: a tryout left-joined with
// the requesting user's attempt, if any.
type TryoutListRow struct {
	ID          uint
	Title       string
	AttemptID   *uint
	Status      *model.AttemptStatus
	StartedAt   *time.Time
	CompletedAt *time.Time
}

func (r *TryoutRepository) ListWithAttempt(userID uint) ([]TryoutListRow, error) {
	var rows []TryoutListRow
	err := r.DB.Table("tryouts").
		Select(`tryouts.id AS id,
			tryouts.title AS title,
			tryout_attempts.id AS attempt_id,
			tryout_attempts.status AS status,
			tryout_attempts.started_at AS started_at,
			tryout_attempts.completed_at AS completed_at`).
		Joins(`LEFT JOIN tryout_attempts ON tryout_attempts.tryout_id = tryouts.id
			AND tryout_attempts.user_id = ? AND tryout_attempts.deleted_at IS NULL`, userID).
		Where("tryouts.deleted_at IS NULL").
		Order("tryouts.id asc").
		Scan(&rows).Error
	return rows, err
}

// AttemptRow is one denormalized row of the attempt join: one row per
// (question, answer option) pair, with the user's selection left-joined in.
type AttemptRow struct {
	AttemptID          uint
	Title              string
	Status             model.AttemptStatus
	StartedAt          time.Time
	CompletedAt        *time.Time
	QuestionID         uint
	QuestionOrder      *int
	QuestionContent    string
	QuestionDiscussion string
	AnswerID           uint
	AnswerCode         string
	AnswerContent      string
	AnswerIsCorrect    bool
	SelectedAnswerID   *uint
}

// AttemptRows runs the tryout × attempt × question × option join for one
// (tryout, user) pair. finishedOnly restricts to submitted attempts (the
// review path). An empty result means either the tryout, the attempt, or the
// question linkage is missing; callers surface that as not-found.
func (r *TryoutRepository) AttemptRows(tryoutID, userID uint, finishedOnly bool) ([]AttemptRow, error) {
	q := r.DB.Table("tryouts").
		Select("tryout_attempts.id AS attempt_id, " +
			"tryouts.title AS title, " +
			"tryout_attempts.status AS status, " +
			"tryout_attempts.started_at AS started_at, " +
			"tryout_attempts.completed_at AS completed_at, " +
			"tryout_questions.question_id AS question_id, " +
			"tryout_questions.`order` AS question_order, " +
			"questions.content AS question_content, " +
			"questions.discussion AS question_discussion, " +
			"answer_options.id AS answer_id, " +
			"answer_options.code AS answer_code, " +
			"answer_options.content AS answer_content, " +
			"answer_options.is_correct AS answer_is_correct, " +
			"tryout_user_answers.selected_answer_id AS selected_answer_id").
		Joins("INNER JOIN tryout_attempts ON tryout_attempts.tryout_id = tryouts.id AND tryout_attempts.deleted_at IS NULL").
		Joins("INNER JOIN tryout_questions ON tryout_questions.tryout_id = tryouts.id").
		Joins("INNER JOIN questions ON questions.id = tryout_questions.question_id AND questions.deleted_at IS NULL").
		Joins("INNER JOIN answer_options ON answer_options.question_id = questions.id AND answer_options.deleted_at IS NULL").
		Joins("LEFT JOIN tryout_user_answers ON tryout_user_answers.question_id = questions.id AND tryout_user_answers.attempt_id = tryout_attempts.id").
		Where("tryouts.id = ? AND tryout_attempts.user_id = ? AND tryouts.deleted_at IS NULL", tryoutID, userID)

	if finishedOnly {
		q = q.Where("tryout_attempts.status = ?", model.AttemptFinished)
	}

	var rows []AttemptRow
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *TryoutRepository) Create(tryout *model.Tryout) error {
	return r.DB.Create(tryout).Error
}

func (r *TryoutRepository) FindByID(id uint) (*model.Tryout, error) {
	var t model.Tryout
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TryoutRepository) Update(tryout *model.Tryout) error {
	return r.DB.Save(tryout).Error
}

func (r *TryoutRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tryout_id = ?", id).Delete(&model.TryoutQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tryout{}, id).Error
	})
}

// SetQuestions replaces the tryout's question linkage in one transaction.
func (r *TryoutRepository) SetQuestions(tryoutID uint, links []model.TryoutQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tryout_id = ?", tryoutID).Delete(&model.TryoutQuestion{}).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
}
