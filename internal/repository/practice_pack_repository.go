package repository

import (
	"tryout_prep_backend/internal/model"

	"gorm.io/gorm"
)

type PracticePackRepository struct {
	DB *gorm.DB
}

func NewPracticePackRepository(db *gorm.DB) *PracticePackRepository {
	return &PracticePackRepository{DB: db}
}

func (r *PracticePackRepository) Create(pack *model.PracticePack) error {
	return r.DB.Create(pack).Error
}

func (r *PracticePackRepository) FindByID(id uint) (*model.PracticePack, error) {
	var p model.PracticePack
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PracticePackRepository) List() ([]model.PracticePack, error) {
	var packs []model.PracticePack
	err := r.DB.Order("id asc").Find(&packs).Error
	return packs, err
}

func (r *PracticePackRepository) Update(pack *model.PracticePack) error {
	return r.DB.Save(pack).Error
}

func (r *PracticePackRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pack_id = ?", id).Delete(&model.PracticePackQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PracticePack{}, id).Error
	})
}

func (r *PracticePackRepository) SetQuestions(packID uint, links []model.PracticePackQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pack_id = ?", packID).Delete(&model.PracticePackQuestion{}).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
}

// PackRow is one denormalized (question, answer option) row of a pack detail
// join, shaped like TryoutRepository.AttemptRow minus the attempt columns.
type PackRow struct {
	Title              string
	QuestionID         uint
	QuestionOrder      *int
	QuestionContent    string
	QuestionDiscussion string
	AnswerID           uint
	AnswerCode         string
	AnswerContent      string
}

func (r *PracticePackRepository) DetailRows(packID uint) ([]PackRow, error) {
	var rows []PackRow
	err := r.DB.Table("practice_packs").
		Select("practice_packs.title AS title, " +
			"practice_pack_questions.question_id AS question_id, " +
			"practice_pack_questions.`order` AS question_order, " +
			"questions.content AS question_content, " +
			"questions.discussion AS question_discussion, " +
			"answer_options.id AS answer_id, " +
			"answer_options.code AS answer_code, " +
			"answer_options.content AS answer_content").
		Joins("INNER JOIN practice_pack_questions ON practice_pack_questions.pack_id = practice_packs.id").
		Joins("INNER JOIN questions ON questions.id = practice_pack_questions.question_id AND questions.deleted_at IS NULL").
		Joins("INNER JOIN answer_options ON answer_options.question_id = questions.id AND answer_options.deleted_at IS NULL").
		Where("practice_packs.id = ? AND practice_packs.deleted_at IS NULL", packID).
		Scan(&rows).Error
	return rows, err
}
