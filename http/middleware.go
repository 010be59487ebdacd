package http

import (
	"net/http"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/otterauth/tokenauth"
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	prometheus.MustRegister(authenticationsMetric)
}

var authenticationsMetric = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tokenauth",
	Name:      "authentications_total",
	Help:      "Total authentication attempts by strategy and outcome",
}, []string{"strategy", "outcome"})

// AuthenticateRequests verifies requests with the given strategies, in order.
// The first strategy to succeed has its user added to the request context for
// upstream handlers to consume; a failure falls through to the next strategy,
// and a 401 with the last failure reason is returned once all strategies have
// failed. An error outcome terminates the attempt with a 500.
func AuthenticateRequests(logger logr.Logger, strategies ...tokenauth.Strategy) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()

			var lastInfo tokenauth.Info
			for _, s := range strategies {
				result := s.Authenticate(r)
				authenticationsMetric.WithLabelValues(s.Name(), string(result.Outcome())).Inc()

				switch result.Outcome() {
				case tokenauth.OutcomeSuccess:
					logger.V(2).Info("authenticated request",
						"request_id", requestID,
						"strategy", s.Name(),
						"path", r.URL.Path)
					ctx := tokenauth.AddSubjectToContext(r.Context(), result.User())
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				case tokenauth.OutcomeError:
					logger.Error(result.Err(), "authenticating request",
						"request_id", requestID,
						"strategy", s.Name(),
						"path", r.URL.Path)
					http.Error(w, "unable to authenticate request", http.StatusInternalServerError)
					return
				default:
					lastInfo = result.Info()
				}
			}

			message := lastInfo.Message()
			if message == "" {
				message = "unauthorized"
			}
			logger.V(1).Info("authentication failed",
				"request_id", requestID,
				"reason", message,
				"path", r.URL.Path)
			http.Error(w, message, http.StatusUnauthorized)
		})
	}
}
