package accounts

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation names used as metric labels
const (
	OperationGetProfile = "get_profile"
	OperationListUsers  = "list_users"
	OperationUpdateUser = "update_user"
)

// Outcome labels
const (
	OutcomeSuccess   = "success"
	OutcomeForbidden = "forbidden"
	OutcomeNotFound  = "not_found"
	OutcomeInvalid   = "invalid"
	OutcomeInternal  = "internal"
)

// OperationRecorder counts operation outcomes
type OperationRecorder interface {
	Record(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) Record(string, string) {}

// PrometheusRecorder exports accounts_operations_total
type PrometheusRecorder struct {
	operations *prometheus.CounterVec
}

// NewPrometheusRecorder registers the operations counter with reg. A
// counter registered earlier under the same name is reused.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "accounts",
		Name:      "operations_total",
		Help:      "Account operations by outcome.",
	}, []string{"operation", "outcome"})

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	if err := reg.Register(counter); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		counter = existing
	}

	return &PrometheusRecorder{operations: counter}, nil
}

// Record increments the counter for operation and outcome
func (p *PrometheusRecorder) Record(operation, outcome string) {
	p.operations.WithLabelValues(operation, outcome).Inc()
}

// Collector exposes the underlying counter, mostly for tests
func (p *PrometheusRecorder) Collector() *prometheus.CounterVec {
	return p.operations
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case IsForbidden(err):
		return OutcomeForbidden
	case errors.Is(err, ErrUserNotFound):
		return OutcomeNotFound
	case IsInvalidPatch(err):
		return OutcomeInvalid
	default:
		return OutcomeInternal
	}
}
