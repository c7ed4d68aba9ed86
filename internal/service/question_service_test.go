package service

import (
	"testing"

	"tryout_prep_backend/internal/model"
	"tryout_prep_backend/internal/repository"
	"tryout_prep_backend/internal/util"
)

func newQuestionService(t *testing.T) *QuestionService {
	t.Helper()
	db := newTestDB(t)
	return NewQuestionService(repository.NewQuestionRepository(db))
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		options []AnswerOptionRequest
		wantErr error
	}{
		{
			name: "valid",
			options: []AnswerOptionRequest{
				{Code: "A", Content: "one"},
				{Code: "B", Content: "two", IsCorrect: true},
			},
		},
		{
			name: "no correct option",
			options: []AnswerOptionRequest{
				{Code: "A", Content: "one"},
				{Code: "B", Content: "two"},
			},
			wantErr: util.ErrNoCorrectOption,
		},
		{
			name: "two correct options",
			options: []AnswerOptionRequest{
				{Code: "A", Content: "one", IsCorrect: true},
				{Code: "B", Content: "two", IsCorrect: true},
			},
			wantErr: util.ErrNoCorrectOption,
		},
		{
			name: "duplicate codes",
			options: []AnswerOptionRequest{
				{Code: "A", Content: "one", IsCorrect: true},
				{Code: "A", Content: "two"},
			},
			wantErr: util.ErrDuplicateOptionCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateOptions(tt.options); err != tt.wantErr {
				t.Errorf("validateOptions() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestQuestionCreateAndGet(t *testing.T) {
	svc := newQuestionService(t)

	created, err := svc.Create(QuestionRequest{
		Content:    "What is 2+2?",
		Discussion: "Basic addition.",
		Options: []AnswerOptionRequest{
			{Code: "A", Content: "3"},
			{Code: "B", Content: "4", IsCorrect: true},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.AnswerOptions) != 2 {
		t.Fatalf("options = %d, want 2", len(got.AnswerOptions))
	}

	if _, err := svc.Get(999); err != util.ErrQuestionNotFound {
		t.Errorf("get missing: got %v, want %v", err, util.ErrQuestionNotFound)
	}
}

func TestQuestionUpdateReplacesOptions(t *testing.T) {
	svc := newQuestionService(t)

	created, err := svc.Create(QuestionRequest{
		Content:    "What is 2+2?",
		Discussion: "Basic addition.",
		Options: []AnswerOptionRequest{
			{Code: "A", Content: "3"},
			{Code: "B", Content: "4", IsCorrect: true},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(created.ID, QuestionRequest{
		Content:    "What is 2+3?",
		Discussion: "Still addition.",
		Options: []AnswerOptionRequest{
			{Code: "A", Content: "4"},
			{Code: "B", Content: "5", IsCorrect: true},
			{Code: "C", Content: "6"},
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Content != "What is 2+3?" {
		t.Errorf("content = %q", updated.Content)
	}
	if len(updated.AnswerOptions) != 3 {
		t.Fatalf("options after update = %d, want 3", len(updated.AnswerOptions))
	}

	_, err = svc.Update(created.ID, QuestionRequest{
		Content:    "x",
		Discussion: "y",
		Options:    []AnswerOptionRequest{{Code: "A", Content: "z"}},
	})
	if err != util.ErrNoCorrectOption {
		t.Errorf("update without correct option: got %v, want %v", err, util.ErrNoCorrectOption)
	}
}

func TestQuestionDeleteUnlinksTryouts(t *testing.T) {
	svc := newQuestionService(t)
	db := svc.Repo.DB
	f := seedTryout(t, db)

	if err := svc.Delete(f.q1.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.Get(f.q1.ID); err != util.ErrQuestionNotFound {
		t.Errorf("get deleted: got %v, want %v", err, util.ErrQuestionNotFound)
	}

	var links int64
	db.Model(&model.TryoutQuestion{}).Where("question_id = ?", f.q1.ID).Count(&links)
	if links != 0 {
		t.Errorf("tryout links remaining = %d, want 0", links)
	}
}
