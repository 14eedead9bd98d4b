package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"lucky-numbers-platform/internal/domain"
	"lucky-numbers-platform/internal/domain/model"
	"lucky-numbers-platform/internal/infra/logging"
	red "lucky-numbers-platform/internal/infra/redis"
	"lucky-numbers-platform/internal/usecase"
)

// Server is the visitor-facing site: landing page, unlock form, redemption
// endpoint and results page.
type Server struct {
	redemptionUC usecase.RedemptionUseCase
	limiter      *red.RateLimiter
	limitPerMin  int
	price        string
	log          *zerolog.Logger
}

func NewServer(
	redemptionUC usecase.RedemptionUseCase,
	limiter *red.RateLimiter,
	limitPerMin int,
	price string,
	logger *zerolog.Logger,
) *Server {
	if price == "" {
		price = "14,90"
	}
	return &Server{
		redemptionUC: redemptionUC,
		limiter:      limiter,
		limitPerMin:  limitPerMin,
		price:        price,
		log:          logger,
	}
}

// Router builds the public route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		// carry the chi request id into the logging context
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logging.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})

	r.Get("/", s.handleLanding)
	r.Get("/pricing", s.handlePricing)
	r.Post("/redeem", s.handleRedeem)
	r.Get("/results", s.handleResults)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return r
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.render(w, landingPage, nil)
}

func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	s.render(w, pricingPage, struct {
		Price           string
		MaxCombinations int
	}{
		Price:           s.price,
		MaxCombinations: model.MaxCombinations,
	})
}

type redeemRequest struct {
	Code                  string `json:"code"`
	NumbersPerCombination int    `json:"numbersPerCombination"`
	NumberOfCombinations  int    `json:"numberOfCombinations"`
}

// handleRedeem consumes an access code and returns the generated combinations.
// Form posts are redirected to /results with the combinations URL-encoded in
// the query string; JSON clients get the array back directly.
func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.With(ctx, s.log)

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, red.RedeemKey(clientIP(r)), s.limitPerMin, time.Minute)
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable, letting request through")
		} else if !ok {
			s.fail(w, r, http.StatusTooManyRequests, "Muitas tentativas. Aguarde um minuto e tente novamente.")
			return
		}
	}

	req, err := parseRedeemRequest(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "Pedido inválido.")
		return
	}

	combos, err := s.redemptionUC.Redeem(ctx, req.Code, req.NumbersPerCombination, req.NumberOfCombinations)
	if err != nil {
		s.failRedeem(w, r, err)
		return
	}

	payload, _ := json.Marshal(combos)
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			NumberCombinations []model.Combination `json:"numberCombinations"`
		}{NumberCombinations: combos})
		return
	}
	http.Redirect(w, r, "/results?numbers="+url.QueryEscape(string(payload)), http.StatusSeeOther)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	var combos [][]int
	if raw := r.URL.Query().Get("numbers"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &combos); err != nil {
			s.log.Debug().Err(err).Msg("unparseable numbers parameter")
			combos = nil
		}
	}
	s.render(w, resultsPage, struct {
		Combinations [][]int
	}{Combinations: combos})
}

// failRedeem maps domain errors to user-facing messages. Nothing propagates as
// a crash; the user resubmits by hand (no automatic retries).
func (s *Server) failRedeem(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrCodeNotFound):
		s.fail(w, r, http.StatusNotFound, "Código de acesso inválido. Verifique seu código e tente novamente.")
	case errors.Is(err, domain.ErrCodeAlreadyUsed):
		s.fail(w, r, http.StatusConflict, "Este código já foi utilizado.")
	case errors.Is(err, domain.ErrInvalidArgument):
		s.fail(w, r, http.StatusBadRequest,
			fmt.Sprintf("A quantidade de dezenas deve ser entre %d e %d.", model.MinNumbersPerCombination, model.MaxNumbersPerCombination))
	case errors.Is(err, domain.ErrSchemaViolation):
		s.fail(w, r, http.StatusBadGateway, "Falha ao gerar dezenas. Tente novamente.")
	default:
		s.log.Error().Err(err).Msg("redemption failed")
		s.fail(w, r, http.StatusServiceUnavailable, "Ocorreu um erro. Tente novamente mais tarde.")
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(struct {
			Error string `json:"error"`
		}{Error: msg})
		return
	}
	w.WriteHeader(status)
	s.render(w, errorPage, struct{ Message string }{Message: msg})
}

func parseRedeemRequest(r *http.Request) (redeemRequest, error) {
	var req redeemRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		req.Code = r.PostFormValue("code")
		req.NumbersPerCombination, _ = strconv.Atoi(r.PostFormValue("numbersPerCombination"))
		req.NumberOfCombinations, _ = strconv.Atoi(r.PostFormValue("numberOfCombinations"))
	}
	// The pricing page fixes combinations at 6 numbers each and only asks how
	// many; the generation area fixes one combination and asks how many
	// numbers. Defaults make either field optional.
	if req.NumbersPerCombination == 0 {
		req.NumbersPerCombination = model.MinNumbersPerCombination
	}
	if req.NumberOfCombinations == 0 {
		req.NumberOfCombinations = 1
	}
	return req, nil
}

func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func clientIP(r *http.Request) string {
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 {
		host = host[:i]
	}
	return host
}
