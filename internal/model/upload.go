package model

// UploadedFile tracks objects pushed to the storage provider.
// swagger:model UploadedFile
type UploadedFile struct {
	BaseModel
	UploaderID   uint   `gorm:"index;type:bigint unsigned" json:"uploaderId"`
	FileName     string `gorm:"size:255;not null" json:"fileName"`
	ObjectKey    string `gorm:"size:512;not null" json:"objectKey"`
	URL          string `gorm:"size:512" json:"url"`
	ThumbnailURL string `gorm:"size:512" json:"thumbnailUrl,omitempty"`
	ContentType  string `gorm:"size:100" json:"contentType"`
	SizeBytes    int64  `gorm:"default:0" json:"sizeBytes"`
}

func (UploadedFile) TableName() string {
	return "uploaded_files"
}
