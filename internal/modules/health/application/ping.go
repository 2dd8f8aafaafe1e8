package application

import (
	"time"

	"github.com/sglre6355/sgrplayer/internal/modules/health/domain"
)

// PingInteractor handles the ping use case.
type PingInteractor struct {
	startedAt time.Time
	now       func() time.Time
}

// NewPingInteractor creates a new PingInteractor that measures uptime from
// its creation.
func NewPingInteractor() *PingInteractor {
	return &PingInteractor{
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// Execute performs the ping operation and returns the result.
func (p *PingInteractor) Execute() *domain.PingResult {
	return domain.NewPingResult(p.startedAt, p.now())
}
