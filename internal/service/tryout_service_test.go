package service

import (
	"os"
	"testing"
	"time"

	"tryout_prep_backend/internal/model"
	"tryout_prep_backend/internal/repository"
	"tryout_prep_backend/internal/util"
	"tryout_prep_backend/pkg/database"
	"tryout_prep_backend/pkg/logger"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// A pooled :memory: connection would be a different empty database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestService(t *testing.T) (*TryoutService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewTryoutService(repository.NewTryoutRepository(db), repository.NewAttemptRepository(db))
	return svc, db
}

func intPtr(n int) *int { return &n }

type fixture struct {
	tryout model.Tryout
	q1, q2 model.Question
}

// seedTryout creates a tryout with two questions in order 1, 2. Each question
// has options A (wrong) and B (correct).
func seedTryout(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{}

	f.q1 = model.Question{
		Content:    "What is 2+2?",
		Discussion: "Basic addition.",
		AnswerOptions: []model.AnswerOption{
			{Code: "A", Content: "3"},
			{Code: "B", Content: "4", IsCorrect: true},
		},
	}
	f.q2 = model.Question{
		Content:    "What is 3*3?",
		Discussion: "Basic multiplication.",
		AnswerOptions: []model.AnswerOption{
			{Code: "A", Content: "6"},
			{Code: "B", Content: "9", IsCorrect: true},
		},
	}
	if err := db.Create(&f.q1).Error; err != nil {
		t.Fatalf("seed question 1: %v", err)
	}
	if err := db.Create(&f.q2).Error; err != nil {
		t.Fatalf("seed question 2: %v", err)
	}

	f.tryout = model.Tryout{Title: "Tryout 1"}
	if err := db.Create(&f.tryout).Error; err != nil {
		t.Fatalf("seed tryout: %v", err)
	}

	links := []model.TryoutQuestion{
		{TryoutID: f.tryout.ID, QuestionID: f.q1.ID, Order: intPtr(1)},
		{TryoutID: f.tryout.ID, QuestionID: f.q2.ID, Order: intPtr(2)},
	}
	if err := db.Create(&links).Error; err != nil {
		t.Fatalf("seed tryout questions: %v", err)
	}

	return f
}

func optionByCode(t *testing.T, q model.Question, code string) model.AnswerOption {
	t.Helper()
	for _, o := range q.AnswerOptions {
		if o.Code == code {
			return o
		}
	}
	t.Fatalf("question %d has no option %q", q.ID, code)
	return model.AnswerOption{}
}

const userID = uint(7)

func TestStartAttemptIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	f := seedTryout(t, db)

	first, err := svc.StartAttempt(f.tryout.ID, userID)
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	if !first.Created {
		t.Error("first start should report created=true")
	}

	second, err := svc.StartAttempt(f.tryout.ID, userID)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if second.Created {
		t.Error("second start should report created=false")
	}
	if second.AttemptID != first.AttemptID {
		t.Errorf("second start resolved to attempt %d, want %d", second.AttemptID, first.AttemptID)
	}

	var count int64
	db.Model(&model.TryoutAttempt{}).
		Where("user_id = ? AND tryout_id = ?", userID, f.tryout.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("attempt rows = %d, want 1", count)
	}
}

func TestStartAttemptUnknownTryout(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.StartAttempt(999, userID); err != util.ErrTryoutNotFound {
		t.Errorf("start on missing tryout: got %v, want %v", err, util.ErrTryoutNotFound)
	}
}

func TestSaveAnswerUpsert(t *testing.T) {
	svc, db := newTestService(t)
	f := seedTryout(t, db)

	start, err := svc.StartAttempt(f.tryout.ID, userID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	optA := optionByCode(t, f.q1, "A")
	optB := optionByCode(t, f.q1, "B")

	if err := svc.SaveAnswer(f.tryout.ID, f.q1.ID, optA.ID, userID); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := svc.SaveAnswer(f.tryout.ID, f.q1.ID, optB.ID, userID); err != nil {
		t.Fatalf("second save: %v", err)
	}

	var answers []model.TryoutUserAnswer
	db.Where("attempt_id = ? AND question_id = ?", start.AttemptID, f.q1.ID).Find(&answers)
	if len(answers) != 1 {
		t.Fatalf("answer rows = %d, want 1", len(answers))
	}
	if answers[0].SelectedAnswerID != optB.ID {
		t.Errorf("selected answer = %d, want latest %d", answers[0].SelectedAnswerID, optB.ID)
	}
}

func TestSaveAnswerWithoutAttempt(t *testing.T) {
	svc, db := newTestService(t)
	f := seedTryout(t, db)

	err := svc.SaveAnswer(f.tryout.ID, f.q1.ID, optionByCode(t, f.q1, "A").ID, userID)
	if err != util.ErrAttemptNotFound {
		t.Errorf("save without attempt: got %v, want %v", err, util.ErrAttemptNotFound)
	}
}

func TestSubmitAttempt(t *testing.T) {
	svc, db := newTestService(t)
	f := seedTryout(t, db)

	if err := svc.SubmitAttempt(f.tryout.ID, userID); err != util.ErrAttemptNotFound {
		t.Fatalf("submit without attempt: got %v, want %v", err, util.ErrAttemptNotFound)
	}

	if _, err := svc.StartAttempt(f.tryout.ID, userID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.SubmitAttempt(f.tryout.ID, userID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	var attempt model.TryoutAttempt
	if err := db.Where("user_id = ? AND tryout_id = ?", userID, f.tryout.ID).First(&attempt).Error; err != nil {
		t.Fatalf("reload attempt: %v", err)
	}
	if attempt.Status != model.AttemptFinished {
		t.Errorf("status = %s, want %s", attempt.Status, model.AttemptFinished)
	}
	if attempt.CompletedAt == nil {
		t.Error("completedAt should be set after submit")
	}

	// Resubmission is idempotent.
	if err := svc.SubmitAttempt(f.tryout.ID, userID); err != nil {
		t.Errorf("resubmit: %v", err)
	}

	// A finished attempt rejects further answers.
	err := svc.SaveAnswer(f.tryout.ID, f.q1.ID, optionByCode(t, f.q1, "A").ID, userID)
	if err != util.ErrAttemptNotOngoing {
		t.Errorf("save after submit: got %v, want %v", err, util.ErrAttemptNotOngoing)
	}
}

func TestGetCurrentAttempt(t *testing.T) {
	svc, db := newTestService(t)
	f := seedTryout(t, db)

	if _, err := svc.GetCurrentAttempt(f.tryout.ID, userID); err != util.ErrTryoutNotFound {
		t.Fatalf("view without attempt: got %v, want %v", err, util.ErrTryoutNotFound)
	}

	start, err := svc.StartAttempt(f.tryout.ID, userID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	optA := optionByCode(t, f.q1, "A")
	if err := svc.SaveAnswer(f.tryout.ID, f.q1.ID, optA.ID, userID); err != nil {
		t.Fatalf("save: %v", err)
	}

	view, err := svc.GetCurrentAttempt(f.tryout.ID, userID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	if view.AttemptID != start.AttemptID {
		t.Errorf("attemptId = %d, want %d", view.AttemptID, start.AttemptID)
	}
	if view.Status != model.AttemptOngoing {
		t.Errorf("status = %s, want %s", view.Status, model.AttemptOngoing)
	}
	if len(view.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(view.Questions))
	}

	q1 := view.Questions[0]
	q2 := view.Questions[1]
	if q1.ID != f.q1.ID || q2.ID != f.q2.ID {
		t.Errorf("question order = [%d %d], want [%d %d]", q1.ID, q2.ID, f.q1.ID, f.q2.ID)
	}
	if q1.SelectedAnswerID == nil || *q1.SelectedAnswerID != optA.ID {
		t.Errorf("q1 selected = %v, want %d", q1.SelectedAnswerID, optA.ID)
	}
	if q2.SelectedAnswerID != nil {
		t.Errorf("q2 selected = %v, want nil", *q2.SelectedAnswerID)
	}
	if len(q1.Answers) != 2 {
		t.Errorf("q1 answers = %d, want 2", len(q1.Answers))
	}
	for _, a := range q1.Answers {
		if a.IsCorrect != nil {
			t.Error("current view must not expose option correctness")
		}
	}
	if q1.UserAnswerIsCorrect != nil {
		t.Error("current view must not expose answer correctness")
	}
}

func TestGetCurrentAttemptOrderTies(t *testing.T) {
	svc, db := newTestService(t)
	f := seedTryout(t, db)

	// Same order value for both questions; nil order on a third falls back to 1.
	q3 := model.Question{
		Content:    "What is 5-2?",
		Discussion: "Basic subtraction.",
		AnswerOptions: []model.AnswerOption{
			{Code: "A", Content: "3", IsCorrect: true},
			{Code: "B", Content: "2"},
		},
	}
	if err := db.Create(&q3).Error; err != nil {
		t.Fatalf("seed question 3: %v", err)
	}
	db.Where("tryout_id = ?", f.tryout.ID).Delete(&model.TryoutQuestion{})
	links := []model.TryoutQuestion{
		{TryoutID: f.tryout.ID, QuestionID: f.q2.ID, Order: intPtr(2)},
		{TryoutID: f.tryout.ID, QuestionID: f.q1.ID, Order: intPtr(2)},
		{TryoutID: f.tryout.ID, QuestionID: q3.ID, Order: nil},
	}
	if err := db.Create(&links).Error; err != nil {
		t.Fatalf("relink questions: %v", err)
	}

	if _, err := svc.StartAttempt(f.tryout.ID, userID); err != nil {
		t.Fatalf("start: %v", err)
	}

	view, err := svc.GetCurrentAttempt(f.tryout.ID, userID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(view.Questions) != 3 {
		t.Fatalf("questions = %d, want 3", len(view.Questions))
	}

	// q3 has no explicit order and defaults to 1; the tied pair is broken by id.
	want := []uint{q3.ID, f.q1.ID, f.q2.ID}
	for i, q := range view.Questions {
		if q.ID != want[i] {
			t.Errorf("questions[%d].ID = %d, want %d", i, q.ID, want[i])
		}
	}
	if view.Questions[0].Order != 1 {
		t.Errorf("nil order should default to 1, got %d", view.Questions[0].Order)
	}
}

func TestGetHistoryByTryout(t *testing.T) {
	svc, db := newTestService(t)
	f := seedTryout(t, db)

	if _, err := svc.StartAttempt(f.tryout.ID, userID); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Wrong answer for q1, correct for q2.
	if err := svc.SaveAnswer(f.tryout.ID, f.q1.ID, optionByCode(t, f.q1, "A").ID, userID); err != nil {
		t.Fatalf("save q1: %v", err)
	}
	if err := svc.SaveAnswer(f.tryout.ID, f.q2.ID, optionByCode(t, f.q2, "B").ID, userID); err != nil {
		t.Fatalf("save q2: %v", err)
	}

	// Review requires a finished attempt.
	if _, err := svc.GetHistoryByTryout(f.tryout.ID, userID); err != util.ErrTryoutNotFound {
		t.Fatalf("review before submit: got %v, want %v", err, util.ErrTryoutNotFound)
	}

	if err := svc.SubmitAttempt(f.tryout.ID, userID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	view, err := svc.GetHistoryByTryout(f.tryout.ID, userID)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if len(view.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(view.Questions))
	}

	q1 := view.Questions[0]
	q2 := view.Questions[1]
	if q1.UserAnswerIsCorrect == nil || *q1.UserAnswerIsCorrect {
		t.Errorf("q1 userAnswerIsCorrect = %v, want false", q1.UserAnswerIsCorrect)
	}
	if q2.UserAnswerIsCorrect == nil || !*q2.UserAnswerIsCorrect {
		t.Errorf("q2 userAnswerIsCorrect = %v, want true", q2.UserAnswerIsCorrect)
	}

	sawCorrect := false
	for _, a := range q1.Answers {
		if a.IsCorrect == nil {
			t.Fatal("review must expose option correctness")
		}
		if *a.IsCorrect {
			sawCorrect = true
		}
	}
	if !sawCorrect {
		t.Error("review should include the correct option row")
	}
}

func TestGetHistory(t *testing.T) {
	svc, db := newTestService(t)
	f := seedTryout(t, db)

	second := model.Tryout{Title: "Tryout 2"}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("seed second tryout: %v", err)
	}

	if _, err := svc.StartAttempt(f.tryout.ID, userID); err != nil {
		t.Fatalf("start first: %v", err)
	}
	if _, err := svc.StartAttempt(second.ID, userID); err != nil {
		t.Fatalf("start second: %v", err)
	}
	if err := svc.SubmitAttempt(f.tryout.ID, userID); err != nil {
		t.Fatalf("submit first: %v", err)
	}

	// Force distinct start times so the ordering is observable.
	db.Model(&model.TryoutAttempt{}).
		Where("tryout_id = ?", f.tryout.ID).
		Update("started_at", time.Now().Add(-time.Hour))

	view, err := svc.GetHistory(userID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if view.TryoutsFinished != 1 {
		t.Errorf("tryoutsFinished = %d, want 1", view.TryoutsFinished)
	}
	if len(view.Data) != 2 {
		t.Fatalf("history rows = %d, want 2", len(view.Data))
	}
	if view.Data[0].TryoutID != second.ID {
		t.Errorf("history should be newest first, got tryout %d first", view.Data[0].TryoutID)
	}
	if view.Data[1].Status != model.AttemptFinished {
		t.Errorf("finished attempt status = %s", view.Data[1].Status)
	}
}

func TestAssembleQuestionsCorrectnessIsOrderIndependent(t *testing.T) {
	selected := uint(11)
	tests := []struct {
		name string
		rows []repository.AttemptRow
		want bool
	}{
		{
			name: "correct row first",
			rows: []repository.AttemptRow{
				{QuestionID: 1, AnswerID: 11, AnswerIsCorrect: true, SelectedAnswerID: &selected},
				{QuestionID: 1, AnswerID: 12, AnswerIsCorrect: false, SelectedAnswerID: &selected},
			},
			want: true,
		},
		{
			name: "correct row last",
			rows: []repository.AttemptRow{
				{QuestionID: 1, AnswerID: 12, AnswerIsCorrect: false, SelectedAnswerID: &selected},
				{QuestionID: 1, AnswerID: 11, AnswerIsCorrect: true, SelectedAnswerID: &selected},
			},
			want: true,
		},
		{
			name: "selected the wrong option",
			rows: []repository.AttemptRow{
				{QuestionID: 1, AnswerID: 11, AnswerIsCorrect: false, SelectedAnswerID: &selected},
				{QuestionID: 1, AnswerID: 12, AnswerIsCorrect: true, SelectedAnswerID: &selected},
			},
			want: false,
		},
		{
			name: "no selection",
			rows: []repository.AttemptRow{
				{QuestionID: 1, AnswerID: 11, AnswerIsCorrect: true},
				{QuestionID: 1, AnswerID: 12, AnswerIsCorrect: false},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := assembleQuestions(tt.rows, true)
			if len(questions) != 1 {
				t.Fatalf("questions = %d, want 1", len(questions))
			}
			got := questions[0].UserAnswerIsCorrect
			if got == nil || *got != tt.want {
				t.Errorf("userAnswerIsCorrect = %v, want %v", got, tt.want)
			}
		})
	}
}
