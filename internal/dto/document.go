package dto

import (
	"time"

	"agrotoken/internal/service"
)

type DocumentResponse struct {
	ID          string     `json:"id"`
	FileName    string     `json:"file_name"`
	FileSize    int64      `json:"file_size"`
	FileURL     string     `json:"file_url"`
	Producer    string     `json:"producer,omitempty"`
	CreatedDate *time.Time `json:"created_date,omitempty"`
}

func NewDocumentResponse(doc *service.StoredDocument) *DocumentResponse {
	if doc == nil {
		return nil
	}
	return &DocumentResponse{
		ID:          doc.ID.String(),
		FileName:    doc.Metadata.Name,
		FileSize:    doc.Metadata.Size,
		FileURL:     doc.FileURL,
		Producer:    doc.Metadata.Producer,
		CreatedDate: doc.Metadata.CreatedDate,
	}
}
