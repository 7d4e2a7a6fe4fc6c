package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MakeHandler routes the account endpoints, the health check and the metrics
// endpoint, wrapped in request logging.
func MakeHandler(svc Service, logger *zap.Logger, m *HTTPMetrics, gatherer prometheus.Gatherer) http.Handler {
	router := httprouter.New()
	router.Handler(http.MethodPost, "/register_account", m.Instrument("/register_account", RegisterAccountHandler(svc, logger)))
	router.Handler(http.MethodPost, "/login", m.Instrument("/login", LoginHandler(svc, logger)))
	router.Handler(http.MethodGet, "/healthz", HealthHandler())
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return RequestLogger(logger, router)
}

func RegisterAccountHandler(svc Service, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRegisterAccountRequest(r.Body)
		if err != nil {
			encodeError(r, logger, err, w)
			return
		}

		if _, err := svc.RegisterAccount(r.Context(), req); err != nil {
			encodeError(r, logger, err, w)
			return
		}

		writeJSON(w, http.StatusOK, messageResponse{Message: registeredMessage})
	})
}

func LoginHandler(svc Service, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeLoginRequest(r.Body)
		if err != nil {
			encodeError(r, logger, err, w)
			return
		}

		acc, err := svc.Login(r.Context(), req)
		if err != nil {
			encodeError(r, logger, err, w)
			return
		}

		writeJSON(w, http.StatusOK, messageResponse{Message: greeting(acc)})
	})
}

func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

func encodeError(r *http.Request, logger *zap.Logger, err error, w http.ResponseWriter) {
	var (
		verrs    ValidationErrors
		notFound *NotFoundError
	)

	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: verrs})
	case errors.Is(err, ErrExistingUsername):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: fmt.Sprintf("Could not create account: %s", err)})
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: notFound.Error()})
	default:
		logger.Error("request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
	}
}

func decodeRegisterAccountRequest(body io.Reader) (registerAccountRequest, error) {
	req := registerAccountRequest{}
	if err := decodeJSON(body, &req); err != nil {
		return registerAccountRequest{}, err
	}
	return req, nil
}

func decodeLoginRequest(body io.Reader) (loginRequest, error) {
	req := loginRequest{}
	if err := decodeJSON(body, &req); err != nil {
		return loginRequest{}, err
	}
	return req, nil
}

// decodeJSON decodes exactly one JSON value from body into v.
func decodeJSON(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ValidationErrors{{Field: "body", Message: "unexpected data after JSON body", Tag: "json"}}
	}
	return nil
}

// decodeError reports an undecodable body as invalid input, naming the
// offending field when the JSON was well formed but mistyped.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return ValidationErrors{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type),
			Tag:     "type",
		}}
	}
	return ValidationErrors{{Field: "body", Message: "malformed JSON body", Tag: "json"}}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
