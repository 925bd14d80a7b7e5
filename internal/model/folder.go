package model

import "time"

type Folder struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
