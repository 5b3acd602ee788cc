package api

import (
	"context"
	"time"

	"github.com/Gui-Oba/FocusAid/app/database"
	"github.com/Gui-Oba/FocusAid/app/engine"
	"github.com/Gui-Oba/FocusAid/app/list"
)

type EngineInterface interface {
	RunPass(trigger string) engine.PassStats
	Reload(lines []string, reclassify bool)
	Render() (string, error)
	AllowedCount() int
	TrackedItems() int
}

var _ EngineInterface = (*engine.Engine)(nil)

type ListLoaderInterface interface {
	Run(ctx context.Context, source string) ([]string, error)
	RunFailClosed(ctx context.Context, source string) []string
}

var _ ListLoaderInterface = (*list.Loader)(nil)

type Handler struct {
	engine             EngineInterface
	passRepo           database.PassRepository
	loader             ListLoaderInterface
	allowSource        string
	reclassifyOnReload bool
	startedAt          time.Time
}
