package database

import (
	"github.com/CandidateX/sentinel/pkg/domain/interview"
	"github.com/CandidateX/sentinel/pkg/domain/violation"
	"gorm.io/gorm"
)

func init() {
	RegisterMigration(Migration{
		ID:   "202601010001",
		Name: "create interview sessions and violation events tables",
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(&interview.Session{}, &violation.Event{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable(&violation.Event{}, &interview.Session{})
		},
	})
}
