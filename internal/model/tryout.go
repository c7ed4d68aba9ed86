package model

import "time"

type AttemptStatus string

const (
	AttemptNotStarted AttemptStatus = "not_started"
	AttemptOngoing    AttemptStatus = "ongoing"
	AttemptFinished   AttemptStatus = "finished"
)

// swagger:model Tryout
type Tryout struct {
	BaseModel
	Title       string           `gorm:"size:255;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description,omitempty"`
	Questions   []TryoutQuestion `gorm:"foreignKey:TryoutID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Tryout) TableName() string {
	return "tryouts"
}

// TryoutQuestion links a question into a tryout with a display order.
// Order is nullable on purpose: the read path substitutes 1 when unset so the
// behavior does not depend on a storage-level column default.
type TryoutQuestion struct {
	TryoutID   uint `gorm:"primaryKey;autoIncrement:false" json:"tryoutId"`
	QuestionID uint `gorm:"primaryKey;autoIncrement:false" json:"questionId"`
	Order      *int `gorm:"column:order;default:1" json:"order"`
}

func (TryoutQuestion) TableName() string {
	return "tryout_questions"
}

// TryoutAttempt is a user's single session of a tryout. The unique index on
// (user_id, tryout_id) is the invariant that start-attempt relies on: the
// storage engine, not a check-then-insert, prevents duplicate sessions.
// swagger:model TryoutAttempt
type TryoutAttempt struct {
	BaseModel
	UserID      uint          `gorm:"not null;uniqueIndex:uniq_user_tryout" json:"userId"`
	TryoutID    uint          `gorm:"not null;uniqueIndex:uniq_user_tryout" json:"tryoutId"`
	StartedAt   time.Time     `gorm:"not null" json:"startedAt"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	Status      AttemptStatus `gorm:"size:20;not null;default:ongoing" json:"status"`
}

func (TryoutAttempt) TableName() string {
	return "tryout_attempts"
}

// TryoutUserAnswer holds the latest selected option per question per attempt.
// The composite primary key makes the save path an upsert, never an append.
type TryoutUserAnswer struct {
	AttemptID        uint `gorm:"primaryKey;autoIncrement:false" json:"attemptId"`
	QuestionID       uint `gorm:"primaryKey;autoIncrement:false" json:"questionId"`
	SelectedAnswerID uint `gorm:"not null" json:"selectedAnswerId"`
}

func (TryoutUserAnswer) TableName() string {
	return "tryout_user_answers"
}
