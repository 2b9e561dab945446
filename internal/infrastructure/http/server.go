package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"cnythb-converter/internal/application"
	"cnythb-converter/internal/domain"

	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Defaults struct {
	Numeric domain.NumericPolicy
	Display domain.DisplayPolicy
	From    domain.Currency
	To      domain.Currency
}

// ReadyCheck reports whether conversions can currently be served.
type ReadyCheck func(ctx context.Context) error

type Server struct {
	conv     application.Converter
	defaults Defaults
	log      *zap.Logger
	ready    ReadyCheck
}

func NewServer(conv application.Converter, defaults Defaults, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{conv: conv, defaults: defaults, log: log}
}

// SetReadyCheck installs the check behind /readyz. Without one the server is always ready.
func (s *Server) SetReadyCheck(fn ReadyCheck) { s.ready = fn }

type convertResponse struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
	Rate   decimal.Decimal `json:"rate"`
	Result string          `json:"result"`
	Date   string          `json:"date"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Convert handles GET /convert?amount=&from=&to=&policy=&display=.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	var amountRaw, fromRaw, toRaw, policyRaw, displayRaw *string
	q := r.URL.Query()
	for name, dst := range map[string]**string{
		"amount":  &amountRaw,
		"from":    &fromRaw,
		"to":      &toRaw,
		"policy":  &policyRaw,
		"display": &displayRaw,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, q, dst); err != nil {
			writeError(w, http.StatusBadRequest, "invalid query parameter "+name)
			return
		}
	}
	from, to := deref(fromRaw), deref(toRaw)
	if from == "" {
		from = string(s.defaults.From)
	}
	if to == "" {
		to = string(s.defaults.To)
	}
	policy := s.defaults.Numeric
	if raw := deref(policyRaw); raw != "" {
		p, err := domain.ParseNumericPolicy(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown policy")
			return
		}
		policy = p
	}
	displayPolicy := s.defaults.Display
	if raw := deref(displayRaw); raw != "" {
		d, err := domain.ParseDisplayPolicy(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown display")
			return
		}
		displayPolicy = d
	}

	amount, err := domain.ValidateAmount(deref(amountRaw), policy)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	pair, err := domain.NewCurrencyPair(from, to)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	conv, err := s.conv.Convert(r.Context(), amount, pair)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{
		Amount: conv.Amount,
		From:   string(pair.From),
		To:     string(pair.To),
		Rate:   conv.Quote.Rate,
		Result: conv.Format(displayPolicy),
		Date:   conv.Quote.Date,
	})
}

func (s *Server) Currencies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"currencies": domain.Currencies,
		"from":       s.defaults.From,
		"to":         s.defaults.To,
	})
}

func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	msg := domain.UserMessage(err)
	switch {
	case errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrMalformedNumber),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrSameCurrency),
		errors.Is(err, domain.ErrMalformedCurrency):
		writeError(w, http.StatusBadRequest, msg)
	case errors.Is(err, domain.ErrFetchFailed):
		s.log.Warn("rate fetch failed", append(requestFields(r.Context()), zap.Error(err))...)
		writeError(w, http.StatusBadGateway, msg)
	default:
		s.log.Error("convert failed", append(requestFields(r.Context()), zap.Error(err))...)
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Code: status, Message: msg})
}
