package model

import "time"

const (
	DocumentStatusPending = "pending"
)

type Document struct {
	Key            string    `bson:"_id"`
	Bucket         string    `bson:"bucket"`
	FileName       string    `bson:"file_name"`
	FileType       string    `bson:"file_type"`
	Size           int64     `bson:"size"`
	Classification string    `bson:"classification"`
	Patient        *Patient  `bson:"patient,omitempty"`
	Status         string    `bson:"status"`
	CreatedAt      time.Time `bson:"created_at"`
}

type Patient struct {
	ID         string `bson:"id"`
	Name       string `bson:"name"`
	Department string `bson:"department"`
}
