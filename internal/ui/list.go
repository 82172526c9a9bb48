package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/cyrkaade/hackathon-lumina/internal/models"
)

var (
	_ list.Item = rankingItem{}
)

// rankingItem wraps [models.WorkerRanking] to implement [list.Item].
type rankingItem struct {
	ranking models.WorkerRanking
}

func (i rankingItem) FilterValue() string { return i.ranking.WorkerName }

func (i rankingItem) Title() string {
	name := i.ranking.WorkerName
	if name == "" {
		name = fmt.Sprintf("Worker %d", i.ranking.WorkerID)
	}
	return fmt.Sprintf("%d. %s", i.ranking.Rank, name)
}

func (i rankingItem) Description() string {
	desc := fmt.Sprintf("%.1f avg • %d calls", i.ranking.AverageScore, i.ranking.TotalCalls)
	if i.ranking.Department != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.ranking.Department)
	}
	return desc
}
