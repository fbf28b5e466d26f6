package core

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	database "matchroom-server/internal/db"
	"matchroom-server/internal/entities"
)

// RecordMatch appends a match-history row for a room that just started.
// Called outside any room lock; a no-op when the database is not set up.
func RecordMatch(code string, players []*PlayerView) {
	if database.Db == nil {
		return
	}

	nicks := make([]string, 0, len(players))
	for _, p := range players {
		if p != nil {
			nicks = append(nicks, p.Nick)
		}
	}

	rec := entities.MatchRecord{
		Code:      code,
		Players:   strings.Join(nicks, ","),
		Seats:     len(players),
		StartedAt: time.Now(),
	}
	if tx := database.Db.Create(&rec); tx.Error != nil {
		log.Error().Err(tx.Error).Str("code", code).Msg("impossible to record match")
	}
}
