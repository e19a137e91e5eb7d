// server/internal/models/common.go
package models

import "time"

// MediaPointer references a document stored on S3 or a similar object store.
type MediaPointer struct {
	Key        string    `bson:"key" json:"key"`
	URL        string    `bson:"url" json:"url"`
	FileName   string    `bson:"fileName" json:"fileName"`
	FileType   string    `bson:"fileType" json:"fileType"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}
