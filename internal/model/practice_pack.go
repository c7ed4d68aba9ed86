package model

// swagger:model PracticePack
type PracticePack struct {
	BaseModel
	Title       string                 `gorm:"size:255;not null" json:"title"`
	Description string                 `gorm:"type:text" json:"description,omitempty"`
	Questions   []PracticePackQuestion `gorm:"foreignKey:PackID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (PracticePack) TableName() string {
	return "practice_packs"
}

type PracticePackQuestion struct {
	PackID     uint `gorm:"primaryKey;autoIncrement:false;column:pack_id" json:"packId"`
	QuestionID uint `gorm:"primaryKey;autoIncrement:false" json:"questionId"`
	Order      *int `gorm:"column:order;default:1" json:"order"`
}

func (PracticePackQuestion) TableName() string {
	return "practice_pack_questions"
}
