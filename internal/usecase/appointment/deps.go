package appointment

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

var tracer = otel.Tracer("github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment")

const defaultMaxDays = 31

// Deps são as dependências compartilhadas pelos casos de uso de agendamento.
type Deps struct {
	Directory domain.Directory
	Store     domain.ScheduleStore
	Cache     domain.AvailabilityCache
	Audit     *audit.Dispatcher
	Clock     timezone.Clock
	Log       *zap.Logger

	// MaxDays limita o tamanho do período consultado na disponibilidade.
	MaxDays int
}

func (d Deps) normalized() Deps {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Clock == nil {
		d.Clock = timezone.NewSystemClock(timezone.DefaultTimezone)
	}
	if d.MaxDays <= 0 {
		d.MaxDays = defaultMaxDays
	}
	return d
}

func (d Deps) now() time.Time {
	return d.Clock.Now().In(d.Clock.Location())
}

// invalidate is best effort: a failure only costs a stale read until TTL.
func (d Deps) invalidate(ctx context.Context, barberID uint, at time.Time) {
	if d.Cache == nil {
		return
	}
	day := timezone.StartOfDay(at, d.Clock.Location())
	if err := d.Cache.Invalidate(ctx, barberID, day); err != nil {
		d.Log.Warn("availability cache invalidation failed",
			zap.Uint("barber_id", barberID),
			zap.String("date", day.Format(timezone.DateLayout)),
			zap.Error(err),
		)
	}
}

func (d Deps) dispatch(ev audit.Event) {
	if d.Audit != nil {
		d.Audit.Dispatch(ev)
	}
}

// recordFailure marca o span só para erros de infraestrutura; erros de
// negócio são respostas esperadas.
func recordFailure(span trace.Span, err error, op string) {
	if err == nil || httperr.KindOf(err) != 0 {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, op)
}
