package modkit

import (
	"dltally/internal/modkit/repokit"
	"dltally/internal/platform/config"
	"dltally/internal/platform/logger"

	"github.com/coder/quartz"
)

// Deps holds core dependencies passed to modules and services
// wiring only; zero values are fine in tests except where noted
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner

	// Clock decides "today" for jobs; nil means the real clock
	Clock quartz.Clock
}

// ClockOrReal returns d.Clock or the wall clock
func (d Deps) ClockOrReal() quartz.Clock {
	if d.Clock == nil {
		return quartz.NewReal()
	}
	return d.Clock
}
