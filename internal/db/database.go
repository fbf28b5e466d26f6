package database

import (
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"matchroom-server/internal/entities"
)

var Db *gorm.DB

func Init(path string) error {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&entities.Player{}); err != nil {
		log.Error().Err(err).Msg("impossible to migrate Player table")
	}
	if err := db.AutoMigrate(&entities.MatchRecord{}); err != nil {
		log.Error().Err(err).Msg("impossible to migrate MatchRecord table")
	}

	Db = db

	log.Info().Str("path", path).Msg("db init finished")
	return nil
}
