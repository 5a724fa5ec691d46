// Package ledger is the inventory valuation and order fulfilment engine.
// Every business transaction runs inside one Store.Atomic call: its reads,
// checks and writes commit together or not at all.
package ledger

import (
	"context"
	"strconv"
	"time"

	"github.com/mmdatafocus/workshop_backend/config"
	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const moduleName = "ledger"

const (
	lockTypeAssemblyOrder = "assembly-order"
	lockTypeSalesOrder    = "sales-order"
)

// ReportCache stores computed reports between writes. Entries belong to the
// generation read before the report was computed; Invalidate, called after
// every committed ledger transaction, moves to a new generation so a report
// computed before a commit is never served after it.
type ReportCache interface {
	Generation(ctx context.Context) (int64, bool)
	Get(ctx context.Context, generation int64, key string, dest any) bool
	Set(ctx context.Context, generation int64, key string, value any)
	Invalidate(ctx context.Context)
}

type Ledger struct {
	store       Store
	logger      *logrus.Logger
	tracer      trace.Tracer
	cache       ReportCache
	orderLocks  bool
	countryCode string
}

type Option func(*Ledger)

func WithLogger(logger *logrus.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(l *Ledger) { l.tracer = tracer }
}

func WithReportCache(cache ReportCache) Option {
	return func(l *Ledger) { l.cache = cache }
}

// WithOrderLocks takes a redis lock per order around fulfilment, delivery and
// payments, on top of the row locks taken inside the transaction.
func WithOrderLocks(enabled bool) Option {
	return func(l *Ledger) { l.orderLocks = enabled }
}

// WithCountryCode sets the default region for contact phone numbers.
func WithCountryCode(code string) Option {
	return func(l *Ledger) { l.countryCode = code }
}

func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:       store,
		logger:      config.GetLogger(),
		tracer:      otel.Tracer("workshop-ledger"),
		countryCode: config.DefaultCountryCode(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// atomic runs fn as one unit of work and drops cached reports once it has
// committed.
func (l *Ledger) atomic(ctx context.Context, op string, fn func(tx Tx) error) error {
	ctx, span := l.tracer.Start(ctx, "ledger."+op)
	defer span.End()

	if err := l.store.Atomic(ctx, fn); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return l.fail(op, err)
	}
	if l.cache != nil {
		// the commit stands even if the caller has gone away
		l.cache.Invalidate(context.WithoutCancel(ctx))
	}
	return nil
}

func (l *Ledger) snapshot(ctx context.Context, op string, fn func(r Reader) error) error {
	ctx, span := l.tracer.Start(ctx, "ledger."+op, trace.WithAttributes(attribute.Bool("read_only", true)))
	defer span.End()

	if err := l.store.Snapshot(ctx, fn); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return l.fail(op, err)
	}
	return nil
}

// fail logs err and hands it back unchanged. Storage failures are errors;
// rejected requests are warnings.
func (l *Ledger) fail(funcName string, err error) error {
	if l.logger == nil {
		return err
	}
	if utils.IsStorage(err) || !(utils.IsValidation(err) || utils.IsPrecondition(err) || utils.IsNotFound(err)) {
		config.LogError(l.logger, moduleName, funcName, "transaction failed", nil, err)
		return err
	}
	l.logger.WithFields(logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  "request rejected",
	}).Warn(err.Error())
	return err
}

func (l *Ledger) info(funcName string, context string, data any) {
	config.LogInfo(l.logger, moduleName, funcName, context, data)
}

// lockOrder is a no-op unless WithOrderLocks is set.
func (l *Ledger) lockOrder(ctx context.Context, lockType string, orderId int, funcName string) (func(), error) {
	if !l.orderLocks {
		return func() {}, nil
	}
	release, err := utils.BusinessLock(ctx, lockType, strconv.Itoa(orderId), moduleName, funcName)
	if err != nil {
		// another instance holds the order; the caller may retry
		return nil, utils.NewStorageError(funcName, err)
	}
	return release, nil
}

// appendEvent writes the outbox row for a change inside the same transaction.
func appendEvent(ctx context.Context, tx Tx, aggregateType string, aggregateId int, action string, payload any) error {
	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
	event, err := models.NewLedgerEvent(aggregateType, aggregateId, action, payload, correlationId)
	if err != nil {
		return err
	}
	return tx.Insert(event)
}

func now() time.Time {
	return time.Now().UTC()
}
