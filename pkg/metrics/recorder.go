// Package metrics exposes Prometheus counters about install method resolutions.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"hub-install-api/pkg/hub"
	"hub-install-api/pkg/installmethods"
)

// Resolution outcomes.
const (
	OutcomeMethods           = "methods"
	OutcomeEmpty             = "empty"
	OutcomeVersionNotCurrent = "version_not_current"
	OutcomeNotInstallable    = "not_installable"
	OutcomeHalted            = "halted"
)

const namespace = "hub_install"

// Recorder counts resolutions and the methods they emit.
type Recorder struct {
	resolutions *prometheus.CounterVec
	methods     *prometheus.CounterVec
}

// NewRecorder registers the resolution counters with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Install method resolutions by repository kind and outcome.",
		}, []string{"repository_kind", "outcome"}),
		methods: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "methods_emitted_total",
			Help:      "Install methods emitted by method kind.",
		}, []string{"method_kind"}),
	}
}

// Observe records the outcome of one resolution. A nil Recorder is a no-op.
func (r *Recorder) Observe(ictx installmethods.PackageInstallContext, out installmethods.Output) {
	if r == nil {
		return
	}

	kind := "none"
	if ictx.Package != nil && ictx.Package.Repository != nil {
		kind = hub.GetKindName(ictx.Package.Repository.Kind)
		if kind == "" {
			kind = "unknown"
		}
	}
	r.resolutions.WithLabelValues(kind, Outcome(out)).Inc()

	for _, m := range out.Methods {
		r.methods.WithLabelValues(m.Kind.String()).Inc()
	}
}

// Outcome classifies a resolution output.
func Outcome(out installmethods.Output) string {
	switch {
	case errors.Is(out.Err, installmethods.ErrVersionNotCurrent):
		return OutcomeVersionNotCurrent
	case errors.Is(out.Err, installmethods.ErrNotInstallableType):
		return OutcomeNotInstallable
	case out.Err != nil:
		return OutcomeHalted
	case len(out.Methods) == 0:
		return OutcomeEmpty
	default:
		return OutcomeMethods
	}
}
