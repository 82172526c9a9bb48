package ui

import (
	"github.com/cyrkaade/hackathon-lumina/internal/models"
)

// uploadSettledMsg reports the outcome of an upload command, successful or not.
//
// seq ties the message to the upload attempt that produced it. The model only
// accepts a settle whose seq matches its current attempt; anything older was
// cancelled or superseded and is dropped.
type uploadSettledMsg struct {
	seq      int
	filename string
	result   *models.UploadResult
	err      error
}

// rankingsFetchedMsg carries the worker leaderboard.
type rankingsFetchedMsg struct {
	rankings []models.WorkerRanking
	err      error
}
