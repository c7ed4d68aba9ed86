package model

type MaterialType string

const (
	MaterialDocument MaterialType = "document"
	MaterialVideo    MaterialType = "video"
)

// Material is a downloadable/streamable study resource (PDF handout, recorded
// class video). The binary lives in the configured storage backend; this row
// only keeps the object name and public URL.
// swagger:model Material
type Material struct {
	BaseModel
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description,omitempty"`
	Type        MaterialType `gorm:"size:20;not null" json:"type"`
	URL         string       `gorm:"size:512" json:"url"`
	ObjectName  string       `gorm:"size:255" json:"-"`
	Size        int64        `json:"size"`
	Duration    float64      `json:"duration,omitempty"` // seconds, videos only
	UploaderID  uint         `gorm:"index" json:"uploaderId"`
}

func (Material) TableName() string {
	return "materials"
}
