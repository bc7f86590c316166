package models

import "time"

type Admin struct {
    ID        uint      `json:"id" gorm:"primaryKey"`
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"-"`
    Username  string    `json:"username" gorm:"uniqueIndex;not null"`
    Password  string    `json:"-" gorm:"not null"` // bcrypt hash
}
