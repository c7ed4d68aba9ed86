package service

import (
	"errors"
	"sort"
	"time"

	"tryout_prep_backend/internal/model"
	"tryout_prep_backend/internal/repository"
	"tryout_prep_backend/internal/util"
	"tryout_prep_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TryoutService owns the attempt lifecycle: starting a session, recording
// answers while it is ongoing, finishing it, and assembling the nested
// current/review views out of the flat join rows.
type TryoutService struct {
	Tryouts  *repository.TryoutRepository
	Attempts *repository.AttemptRepository
}

func NewTryoutService(tryouts *repository.TryoutRepository, attempts *repository.AttemptRepository) *TryoutService {
	return &TryoutService{
		Tryouts:  tryouts,
		Attempts: attempts,
	}
}

type TryoutListItem struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	AttemptID   *uint               `json:"attemptId,omitempty"`
	Status      model.AttemptStatus `json:"status"`
	StartedAt   *time.Time          `json:"startedAt,omitempty"`
	CompletedAt *time.Time          `json:"completedAt,omitempty"`
}

type AnswerView struct {
	ID        uint   `json:"id"`
	Code      string `json:"code"`
	Content   string `json:"content"`
	IsCorrect *bool  `json:"isCorrect,omitempty"` // only populated on the review path
}

type QuestionView struct {
	ID                  uint         `json:"id"`
	Order               int          `json:"order"`
	Content             string       `json:"content"`
	Discussion          string       `json:"discussion"`
	SelectedAnswerID    *uint        `json:"selectedAnswerId"`
	UserAnswerIsCorrect *bool        `json:"userAnswerIsCorrect,omitempty"` // only populated on the review path
	Answers             []AnswerView `json:"answers"`
}

type AttemptView struct {
	AttemptID   uint                `json:"attemptId"`
	Title       string              `json:"title"`
	Status      model.AttemptStatus `json:"status"`
	StartedAt   time.Time           `json:"startedAt"`
	CompletedAt *time.Time          `json:"completedAt,omitempty"`
	Questions   []QuestionView      `json:"questions"`
}

type StartResult struct {
	AttemptID uint `json:"attemptId"`
	Created   bool `json:"created"`
}

type HistoryItem struct {
	TryoutID    uint                `json:"tryoutId"`
	StartedAt   time.Time           `json:"startedAt"`
	CompletedAt *time.Time          `json:"completedAt,omitempty"`
	Status      model.AttemptStatus `json:"status"`
}

type HistoryView struct {
	TryoutsFinished int           `json:"tryoutsFinished"`
	Data            []HistoryItem `json:"data"`
}

// List returns the tryout catalog with the user's attempt state left-joined
// in. Tryouts the user never started come back as not_started.
func (s *TryoutService) List(userID uint) ([]TryoutListItem, error) {
	rows, err := s.Tryouts.ListWithAttempt(userID)
	if err != nil {
		return nil, err
	}

	items := make([]TryoutListItem, len(rows))
	for i, row := range rows {
		status := model.AttemptNotStarted
		if row.Status != nil {
			status = *row.Status
		}
		items[i] = TryoutListItem{
			ID:          row.ID,
			Title:       row.Title,
			AttemptID:   row.AttemptID,
			Status:      status,
			StartedAt:   row.StartedAt,
			CompletedAt: row.CompletedAt,
		}
	}
	return items, nil
}

// StartAttempt starts a session for (tryout, user), or returns the one that
// already exists. The insert carries a do-nothing conflict policy against the
// unique (user_id, tryout_id) index; when it inserts nothing, the existing
// attempt is fetched instead of failing, so repeated starts always resolve to
// the same attempt id.
func (s *TryoutService) StartAttempt(tryoutID, userID uint) (*StartResult, error) {
	if _, err := s.Tryouts.FindByID(tryoutID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTryoutNotFound
		}
		return nil, err
	}

	attempt := &model.TryoutAttempt{
		UserID:    userID,
		TryoutID:  tryoutID,
		StartedAt: time.Now(),
		Status:    model.AttemptOngoing,
	}

	created, err := s.Attempts.CreateIgnoreConflict(attempt)
	if err != nil {
		return nil, err
	}

	if !created {
		existing, err := s.Attempts.FindByTryoutAndUser(tryoutID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrAttemptNotFound
			}
			return nil, err
		}
		attempt = existing
	} else {
		logger.Log.Info("tryout attempt started",
			zap.Uint("tryoutId", tryoutID),
			zap.Uint("userId", userID),
			zap.Uint("attemptId", attempt.ID))
	}

	return &StartResult{AttemptID: attempt.ID, Created: created}, nil
}

// SaveAnswer upserts the user's selection for one question of the current
// attempt. Only an ongoing attempt accepts answers.
func (s *TryoutService) SaveAnswer(tryoutID, questionID, selectedAnswerID, userID uint) error {
	attempt, err := s.Attempts.FindByTryoutAndUser(tryoutID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrAttemptNotFound
		}
		return err
	}

	// The lookup above is already scoped by userID; this guards against a
	// storage backend that ignores the scope.
	if attempt.UserID != userID {
		return util.ErrAttemptNotOwned
	}

	if attempt.Status != model.AttemptOngoing {
		return util.ErrAttemptNotOngoing
	}

	return s.Attempts.UpsertAnswer(&model.TryoutUserAnswer{
		AttemptID:        attempt.ID,
		QuestionID:       questionID,
		SelectedAnswerID: selectedAnswerID,
	})
}

// SubmitAttempt finishes the attempt for (tryout, user). Resubmission is
// idempotent: the row is updated again and completed_at refreshed.
func (s *TryoutService) SubmitAttempt(tryoutID, userID uint) error {
	affected, err := s.Attempts.Finish(tryoutID, userID, time.Now())
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrAttemptNotFound
	}
	return nil
}

// GetCurrentAttempt assembles the in-progress view of the user's attempt:
// every question with its options and the user's current selections.
func (s *TryoutService) GetCurrentAttempt(tryoutID, userID uint) (*AttemptView, error) {
	return s.assembleAttempt(tryoutID, userID, false)
}

// GetHistoryByTryout assembles the review of a finished attempt, exposing
// option correctness and whether the user's pick was right per question.
func (s *TryoutService) GetHistoryByTryout(tryoutID, userID uint) (*AttemptView, error) {
	return s.assembleAttempt(tryoutID, userID, true)
}

func (s *TryoutService) assembleAttempt(tryoutID, userID uint, review bool) (*AttemptView, error) {
	rows, err := s.Tryouts.AttemptRows(tryoutID, userID, review)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, util.ErrTryoutNotFound
	}

	view := &AttemptView{
		AttemptID:   rows[0].AttemptID,
		Title:       rows[0].Title,
		Status:      rows[0].Status,
		StartedAt:   rows[0].StartedAt,
		CompletedAt: rows[0].CompletedAt,
		Questions:   assembleQuestions(rows, review),
	}
	return view, nil
}

// assembleQuestions un-flattens the denormalized join rows into a nested
// question tree. Rows are grouped by question id into a map (first-seen row
// wins for the question metadata, every row appends its option), then the
// groups are ordered by (order, id) so ties stay deterministic.
func assembleQuestions(rows []repository.AttemptRow, review bool) []QuestionView {
	grouped := make(map[uint]*QuestionView, len(rows))
	for _, row := range rows {
		qv, seen := grouped[row.QuestionID]
		if !seen {
			order := 1
			if row.QuestionOrder != nil {
				order = *row.QuestionOrder
			}
			qv = &QuestionView{
				ID:               row.QuestionID,
				Order:            order,
				Content:          row.QuestionContent,
				Discussion:       row.QuestionDiscussion,
				SelectedAnswerID: row.SelectedAnswerID,
			}
			if review {
				correct := row.SelectedAnswerID != nil &&
					row.AnswerIsCorrect &&
					*row.SelectedAnswerID == row.AnswerID
				qv.UserAnswerIsCorrect = &correct
			}
			grouped[row.QuestionID] = qv
		}

		answer := AnswerView{
			ID:      row.AnswerID,
			Code:    row.AnswerCode,
			Content: row.AnswerContent,
		}
		if review {
			isCorrect := row.AnswerIsCorrect
			answer.IsCorrect = &isCorrect
		}
		qv.Answers = append(qv.Answers, answer)

		// The correct-option row and the selected-option row can arrive in
		// any order within the group, so correctness is re-checked on every
		// row rather than decided by the first one.
		if review && row.SelectedAnswerID != nil && *row.SelectedAnswerID == row.AnswerID && row.AnswerIsCorrect {
			correct := true
			qv.UserAnswerIsCorrect = &correct
		}
	}

	questions := make([]QuestionView, 0, len(grouped))
	for _, qv := range grouped {
		questions = append(questions, *qv)
	}
	sort.Slice(questions, func(i, j int) bool {
		if questions[i].Order != questions[j].Order {
			return questions[i].Order < questions[j].Order
		}
		return questions[i].ID < questions[j].ID
	})
	return questions
}

type TryoutQuestionLink struct {
	QuestionID uint
	Order      *int
}

func (s *TryoutService) CreateTryout(title, description string) (*model.Tryout, error) {
	tryout := &model.Tryout{Title: title, Description: description}
	if err := s.Tryouts.Create(tryout); err != nil {
		return nil, err
	}
	return tryout, nil
}

func (s *TryoutService) UpdateTryout(id uint, title, description string) (*model.Tryout, error) {
	tryout, err := s.Tryouts.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTryoutNotFound
		}
		return nil, err
	}

	tryout.Title = title
	tryout.Description = description
	if err := s.Tryouts.Update(tryout); err != nil {
		return nil, err
	}
	return tryout, nil
}

func (s *TryoutService) DeleteTryout(id uint) error {
	if _, err := s.Tryouts.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTryoutNotFound
		}
		return err
	}
	return s.Tryouts.Delete(id)
}

// SetQuestions replaces the ordered question linkage of a tryout.
func (s *TryoutService) SetQuestions(tryoutID uint, links []TryoutQuestionLink) error {
	if _, err := s.Tryouts.FindByID(tryoutID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTryoutNotFound
		}
		return err
	}

	rows := make([]model.TryoutQuestion, len(links))
	for i, l := range links {
		rows[i] = model.TryoutQuestion{
			TryoutID:   tryoutID,
			QuestionID: l.QuestionID,
			Order:      l.Order,
		}
	}
	return s.Tryouts.SetQuestions(tryoutID, rows)
}

// GetHistory lists all of the user's attempts, newest first, with the count
// of finished tryouts derived on the fly.
func (s *TryoutService) GetHistory(userID uint) (*HistoryView, error) {
	attempts, err := s.Attempts.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	view := &HistoryView{Data: make([]HistoryItem, len(attempts))}
	for i, a := range attempts {
		if a.Status == model.AttemptFinished {
			view.TryoutsFinished++
		}
		view.Data[i] = HistoryItem{
			TryoutID:    a.TryoutID,
			StartedAt:   a.StartedAt,
			CompletedAt: a.CompletedAt,
			Status:      a.Status,
		}
	}
	return view, nil
}
