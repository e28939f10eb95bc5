package models

import "time"

// FileMetadata describes the uploaded receipt file. Producer is the PDF
// producer string when the intake step could read one.
type FileMetadata struct {
	CreatedDate *time.Time `json:"created_date,omitempty"`
	Size        int64      `json:"size"`
	Name        string     `json:"name"`
	Producer    string     `json:"producer,omitempty"`
}
