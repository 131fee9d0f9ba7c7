package models

import "time"

// Image records metadata for an uploaded file. The (entity_type, entity_id)
// pair is free-form: callers attach images to products, stores or recipe
// steps without a hard foreign key.
type Image struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Filename         string    `json:"filename" gorm:"not null"`
	OriginalFilename string    `json:"original_filename"`
	FilePath         string    `json:"file_path"`
	FileSize         int64     `json:"file_size"`
	MimeType         string    `json:"mime_type"`
	UploadedBy       uint      `json:"uploaded_by"`
	EntityType       string    `json:"entity_type" gorm:"index:idx_images_entity"`
	EntityID         *uint     `json:"entity_id" gorm:"index:idx_images_entity"`
	CreatedAt        time.Time `json:"created_at"`
}
