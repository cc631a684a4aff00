package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique"`
	PasswordHash string
	AuthProvider string `gorm:"default:local"` // local, google

	Quizzes []Quiz       `gorm:"foreignKey:CreatorID"`
	Results []QuizResult `gorm:"foreignKey:UserID"`
}
