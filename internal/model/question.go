package model

// Question is the shared question bank entry. A question belongs to no single
// tryout or practice pack; both reference it through link tables.
// swagger:model Question
type Question struct {
	BaseModel
	Content       string         `gorm:"type:text;not null" json:"content"`
	Discussion    string         `gorm:"type:text;not null" json:"discussion"`
	AnswerOptions []AnswerOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answerOptions,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// AnswerOption is one selectable choice of a question. Exactly one option per
// question should carry IsCorrect=true; the question service validates this at
// write time, the schema does not.
// swagger:model AnswerOption
type AnswerOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;uniqueIndex:uniq_question_code" json:"questionId"`
	Code       string `gorm:"size:1;not null;uniqueIndex:uniq_question_code" json:"code"`
	Content    string `gorm:"type:text;not null" json:"content"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (AnswerOption) TableName() string {
	return "answer_options"
}
