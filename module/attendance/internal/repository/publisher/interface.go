package publisher

import (
	"context"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
)

type ClockPublisher interface {
	PublishClock(ctx context.Context, event *domain.ClockEvent) error
}
