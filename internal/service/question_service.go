package service

import (
	"errors"

	"tryout_prep_backend/internal/model"
	"tryout_prep_backend/internal/repository"
	"tryout_prep_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	Repo *repository.QuestionRepository
}

func NewQuestionService(repo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{Repo: repo}
}

type AnswerOptionRequest struct {
	Code      string `json:"code" binding:"required,len=1"`
	Content   string `json:"content" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionRequest struct {
	Content    string                `json:"content" binding:"required"`
	Discussion string                `json:"discussion" binding:"required"`
	Options    []AnswerOptionRequest `json:"options" binding:"required,min=1"`
}

// validateOptions enforces the soft schema invariants the storage layer does
// not: single-letter codes unique within the question and exactly one option
// marked correct.
func validateOptions(options []AnswerOptionRequest) error {
	codes := make(map[string]bool, len(options))
	correct := 0
	for _, o := range options {
		if codes[o.Code] {
			return util.ErrDuplicateOptionCode
		}
		codes[o.Code] = true
		if o.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return util.ErrNoCorrectOption
	}
	return nil
}

func buildOptions(options []AnswerOptionRequest) []model.AnswerOption {
	out := make([]model.AnswerOption, len(options))
	for i, o := range options {
		out[i] = model.AnswerOption{
			Code:      o.Code,
			Content:   o.Content,
			IsCorrect: o.IsCorrect,
		}
	}
	return out
}

func (s *QuestionService) Create(req QuestionRequest) (*model.Question, error) {
	if err := validateOptions(req.Options); err != nil {
		return nil, err
	}

	q := &model.Question{
		Content:       req.Content,
		Discussion:    req.Discussion,
		AnswerOptions: buildOptions(req.Options),
	}
	if err := s.Repo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	q, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) List(page, limit int) ([]model.Question, int64, error) {
	return s.Repo.List(page, limit)
}

func (s *QuestionService) Update(id uint, req QuestionRequest) (*model.Question, error) {
	if err := validateOptions(req.Options); err != nil {
		return nil, err
	}

	q, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	q.Content = req.Content
	q.Discussion = req.Discussion
	q.AnswerOptions = nil
	if err := s.Repo.UpdateWithOptions(q, buildOptions(req.Options)); err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *QuestionService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
