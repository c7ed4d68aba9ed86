package service

import (
	"context"
	"testing"

	"tryout_prep_backend/internal/model"
	"tryout_prep_backend/internal/repository"
	"tryout_prep_backend/internal/util"
)

func newPackService(t *testing.T) *PracticePackService {
	t.Helper()
	db := newTestDB(t)
	return NewPracticePackService(repository.NewPracticePackRepository(db), nil)
}

func TestPracticePackLifecycle(t *testing.T) {
	svc := newPackService(t)
	ctx := context.Background()

	pack, err := svc.Create(ctx, PracticePackRequest{Title: "Algebra drills", Description: "Warm-up set"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	summaries, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Title != "Algebra drills" {
		t.Fatalf("list = %+v", summaries)
	}

	if _, err := svc.Update(ctx, 999, PracticePackRequest{Title: "x"}); err != util.ErrPackNotFound {
		t.Errorf("update missing: got %v, want %v", err, util.ErrPackNotFound)
	}

	if err := svc.Delete(ctx, pack.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, pack.ID); err != util.ErrPackNotFound {
		t.Errorf("delete again: got %v, want %v", err, util.ErrPackNotFound)
	}
}

func TestPracticePackDetail(t *testing.T) {
	svc := newPackService(t)
	db := svc.Repo.DB
	ctx := context.Background()

	q1 := model.Question{
		Content:    "What is 2+2?",
		Discussion: "Basic addition.",
		AnswerOptions: []model.AnswerOption{
			{Code: "A", Content: "3"},
			{Code: "B", Content: "4", IsCorrect: true},
		},
	}
	q2 := model.Question{
		Content:    "What is 3*3?",
		Discussion: "Basic multiplication.",
		AnswerOptions: []model.AnswerOption{
			{Code: "A", Content: "9", IsCorrect: true},
			{Code: "B", Content: "6"},
		},
	}
	if err := db.Create(&q1).Error; err != nil {
		t.Fatalf("seed q1: %v", err)
	}
	if err := db.Create(&q2).Error; err != nil {
		t.Fatalf("seed q2: %v", err)
	}

	pack, err := svc.Create(ctx, PracticePackRequest{Title: "Arithmetic"})
	if err != nil {
		t.Fatalf("create pack: %v", err)
	}
	links := []PackQuestionLink{
		{QuestionID: q2.ID, Order: intPtr(2)},
		{QuestionID: q1.ID, Order: intPtr(1)},
	}
	if err := svc.SetQuestions(ctx, pack.ID, links); err != nil {
		t.Fatalf("set questions: %v", err)
	}

	view, err := svc.Detail(pack.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if view.Title != "Arithmetic" {
		t.Errorf("title = %q", view.Title)
	}
	if len(view.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(view.Questions))
	}
	if view.Questions[0].ID != q1.ID || view.Questions[1].ID != q2.ID {
		t.Errorf("question order = [%d %d], want [%d %d]",
			view.Questions[0].ID, view.Questions[1].ID, q1.ID, q2.ID)
	}
	if len(view.Questions[0].Answers) != 2 {
		t.Errorf("q1 answers = %d, want 2", len(view.Questions[0].Answers))
	}

	if _, err := svc.Detail(999); err != util.ErrPackNotFound {
		t.Errorf("detail missing: got %v, want %v", err, util.ErrPackNotFound)
	}
}
