package application

import "github.com/sglre6355/sgrplayer/internal/modules/health/domain"

// EchoInteractor handles the echo use case.
type EchoInteractor struct{}

// NewEchoInteractor creates a new EchoInteractor.
func NewEchoInteractor() *EchoInteractor {
	return &EchoInteractor{}
}

// Execute evaluates the message and returns the echo result.
func (e *EchoInteractor) Execute(message string) *domain.EchoResult {
	return domain.NewEchoResult(message)
}
