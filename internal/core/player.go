package core

import (
	"github.com/google/uuid"

	database "matchroom-server/internal/db"
	"matchroom-server/internal/entities"
)

func AddPlayer(name string) (entities.Player, error) {
	id, _ := uuid.NewUUID()
	player := entities.Player{ID: id, Name: name}
	tx := database.Db.Create(&player)
	return player, tx.Error
}

func GetPlayer(id uuid.UUID) (entities.Player, error) {
	var player entities.Player
	tx := database.Db.First(&player, id)
	return player, tx.Error
}
