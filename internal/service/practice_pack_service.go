package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"tryout_prep_backend/internal/model"
	"tryout_prep_backend/internal/repository"
	"tryout_prep_backend/internal/util"
	"tryout_prep_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	packListCacheKey = "practice_packs:list"
	packListCacheTTL = 5 * time.Minute
)

// PracticePackService serves the non-timed question groupings. The catalog is
// static content, so the listing is cached in redis and invalidated on admin
// writes.
type PracticePackService struct {
	Repo *repository.PracticePackRepository
	RDB  *redis.Client
}

func NewPracticePackService(repo *repository.PracticePackRepository, rdb *redis.Client) *PracticePackService {
	return &PracticePackService{Repo: repo, RDB: rdb}
}

type PackSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type PackQuestionView struct {
	ID         uint         `json:"id"`
	Order      int          `json:"order"`
	Content    string       `json:"content"`
	Discussion string       `json:"discussion"`
	Answers    []AnswerView `json:"answers"`
}

type PackView struct {
	Title     string             `json:"title"`
	Questions []PackQuestionView `json:"questions"`
}

func (s *PracticePackService) List(ctx context.Context) ([]PackSummary, error) {
	if s.RDB != nil {
		if cached, err := s.RDB.Get(ctx, packListCacheKey).Result(); err == nil {
			var summaries []PackSummary
			if json.Unmarshal([]byte(cached), &summaries) == nil {
				return summaries, nil
			}
		}
	}

	packs, err := s.Repo.List()
	if err != nil {
		return nil, err
	}

	summaries := make([]PackSummary, len(packs))
	for i, p := range packs {
		summaries[i] = PackSummary{ID: p.ID, Title: p.Title, Description: p.Description}
	}

	if s.RDB != nil {
		if data, err := json.Marshal(summaries); err == nil {
			s.RDB.Set(ctx, packListCacheKey, data, packListCacheTTL)
		}
	}

	return summaries, nil
}

// Detail groups the denormalized pack join rows into the nested question
// tree, same shape as the tryout views but without attempt state.
func (s *PracticePackService) Detail(packID uint) (*PackView, error) {
	rows, err := s.Repo.DetailRows(packID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, util.ErrPackNotFound
	}

	grouped := make(map[uint]*PackQuestionView, len(rows))
	for _, row := range rows {
		qv, seen := grouped[row.QuestionID]
		if !seen {
			order := 1
			if row.QuestionOrder != nil {
				order = *row.QuestionOrder
			}
			qv = &PackQuestionView{
				ID:         row.QuestionID,
				Order:      order,
				Content:    row.QuestionContent,
				Discussion: row.QuestionDiscussion,
			}
			grouped[row.QuestionID] = qv
		}
		qv.Answers = append(qv.Answers, AnswerView{
			ID:      row.AnswerID,
			Code:    row.AnswerCode,
			Content: row.AnswerContent,
		})
	}

	questions := make([]PackQuestionView, 0, len(grouped))
	for _, qv := range grouped {
		questions = append(questions, *qv)
	}
	sort.Slice(questions, func(i, j int) bool {
		if questions[i].Order != questions[j].Order {
			return questions[i].Order < questions[j].Order
		}
		return questions[i].ID < questions[j].ID
	})

	return &PackView{Title: rows[0].Title, Questions: questions}, nil
}

type PracticePackRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type PackQuestionLink struct {
	QuestionID uint `json:"questionId" binding:"required"`
	Order      *int `json:"order"`
}

func (s *PracticePackService) Create(ctx context.Context, req PracticePackRequest) (*model.PracticePack, error) {
	pack := &model.PracticePack{Title: req.Title, Description: req.Description}
	if err := s.Repo.Create(pack); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return pack, nil
}

func (s *PracticePackService) Update(ctx context.Context, id uint, req PracticePackRequest) (*model.PracticePack, error) {
	pack, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPackNotFound
		}
		return nil, err
	}

	pack.Title = req.Title
	pack.Description = req.Description
	if err := s.Repo.Update(pack); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return pack, nil
}

func (s *PracticePackService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrPackNotFound
		}
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *PracticePackService) SetQuestions(ctx context.Context, packID uint, links []PackQuestionLink) error {
	if _, err := s.Repo.FindByID(packID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrPackNotFound
		}
		return err
	}

	rows := make([]model.PracticePackQuestion, len(links))
	for i, l := range links {
		rows[i] = model.PracticePackQuestion{
			PackID:     packID,
			QuestionID: l.QuestionID,
			Order:      l.Order,
		}
	}
	if err := s.Repo.SetQuestions(packID, rows); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *PracticePackService) invalidateCache(ctx context.Context) {
	if s.RDB == nil {
		return
	}
	if err := s.RDB.Del(ctx, packListCacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate practice pack cache", zap.Error(err))
	}
}
