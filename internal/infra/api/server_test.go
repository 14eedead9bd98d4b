//go:build !integration

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"lucky-numbers-platform/internal/domain"
	"lucky-numbers-platform/internal/domain/model"
	"lucky-numbers-platform/internal/infra/api"
)

type mockRedemptionUC struct {
	combos []model.Combination
	err    error

	gotCode  string
	gotK     int
	gotCount int
}

func (m *mockRedemptionUC) Verify(_ context.Context, code string) (*model.AccessCode, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &model.AccessCode{ID: "id-1", Code: model.NormalizeCode(code)}, nil
}

func (m *mockRedemptionUC) Redeem(_ context.Context, code string, k, count int) ([]model.Combination, error) {
	m.gotCode, m.gotK, m.gotCount = code, k, count
	if m.err != nil {
		return nil, m.err
	}
	return m.combos, nil
}

func newSiteServer(uc *mockRedemptionUC) http.Handler {
	l := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	return api.NewServer(uc, nil, 10, "14,90", &l).Router()
}

func TestPublicPages(t *testing.T) {
	srv := newSiteServer(&mockRedemptionUC{})

	cases := []struct {
		path string
		want string
	}{
		{"/", "MEGA DA VIRADA"},
		{"/pricing", "R$ 14,90"},
		{"/pricing", "código de acesso"},
		{"/results", "Não foi possível carregar"},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, c.path, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: status %d", c.path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), c.want) {
			t.Errorf("GET %s: body missing %q", c.path, c.want)
		}
	}
}

func TestRedeemJSON(t *testing.T) {
	t.Run("success returns the combinations", func(t *testing.T) {
		uc := &mockRedemptionUC{combos: []model.Combination{{4, 8, 15, 16, 23, 42}}}
		srv := newSiteServer(uc)

		body, _ := json.Marshal(map[string]any{"code": "LUCKY001", "numberOfCombinations": 1})
		req := httptest.NewRequest(http.MethodPost, "/redeem", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			NumberCombinations [][]int `json:"numberCombinations"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if len(resp.NumberCombinations) != 1 || resp.NumberCombinations[0][5] != 42 {
			t.Errorf("unexpected payload: %+v", resp)
		}
		if uc.gotCode != "LUCKY001" || uc.gotK != model.MinNumbersPerCombination || uc.gotCount != 1 {
			t.Errorf("use case called with code=%q k=%d count=%d", uc.gotCode, uc.gotK, uc.gotCount)
		}
	})

	t.Run("error statuses", func(t *testing.T) {
		cases := []struct {
			name string
			err  error
			want int
		}{
			{"unknown code", domain.ErrCodeNotFound, http.StatusNotFound},
			{"used code", domain.ErrCodeAlreadyUsed, http.StatusConflict},
			{"bad parameters", domain.ErrInvalidArgument, http.StatusBadRequest},
			{"generator misbehaved", domain.ErrSchemaViolation, http.StatusBadGateway},
			{"backend down", domain.ErrUnavailable, http.StatusServiceUnavailable},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				srv := newSiteServer(&mockRedemptionUC{err: c.err})
				body, _ := json.Marshal(map[string]string{"code": "WHATEVER"})
				req := httptest.NewRequest(http.MethodPost, "/redeem", bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				rec := httptest.NewRecorder()
				srv.ServeHTTP(rec, req)

				if rec.Code != c.want {
					t.Fatalf("expected %d, got %d", c.want, rec.Code)
				}
				var resp struct {
					Error string `json:"error"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error == "" {
					t.Errorf("expected JSON error body, got %q (%v)", rec.Body.String(), err)
				}
			})
		}
	})
}

func TestRedeemForm(t *testing.T) {
	t.Run("form post redirects to results with the numbers", func(t *testing.T) {
		uc := &mockRedemptionUC{combos: []model.Combination{{1, 2, 3, 4, 5, 6}, {7, 8, 9, 10, 11, 12}}}
		srv := newSiteServer(uc)

		form := url.Values{"code": {"lucky001"}, "numberOfCombinations": {"2"}}
		req := httptest.NewRequest(http.MethodPost, "/redeem", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", rec.Code)
		}
		loc, err := url.Parse(rec.Header().Get("Location"))
		if err != nil {
			t.Fatal(err)
		}
		if loc.Path != "/results" {
			t.Fatalf("redirected to %s", loc.Path)
		}
		var combos [][]int
		if err := json.Unmarshal([]byte(loc.Query().Get("numbers")), &combos); err != nil {
			t.Fatalf("numbers parameter not parseable: %v", err)
		}
		if len(combos) != 2 || combos[1][0] != 7 {
			t.Errorf("unexpected numbers: %v", combos)
		}
		if uc.gotCount != 2 {
			t.Errorf("expected 2 combinations requested, got %d", uc.gotCount)
		}

		// Follow the redirect: the results page renders the balls.
		req2 := httptest.NewRequest(http.MethodGet, loc.String(), nil)
		rec2 := httptest.NewRecorder()
		srv.ServeHTTP(rec2, req2)
		if rec2.Code != http.StatusOK {
			t.Fatalf("results page status %d", rec2.Code)
		}
		for _, want := range []string{"Combinação #1", "Combinação #2", ">07<"} {
			if !strings.Contains(rec2.Body.String(), want) {
				t.Errorf("results page missing %q", want)
			}
		}
	})

	t.Run("form post failure renders the error page", func(t *testing.T) {
		srv := newSiteServer(&mockRedemptionUC{err: domain.ErrCodeAlreadyUsed})

		form := url.Values{"code": {"SPENT001"}}
		req := httptest.NewRequest(http.MethodPost, "/redeem", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "já foi utilizado") {
			t.Errorf("error page missing message: %s", rec.Body.String())
		}
	})
}

func TestResultsPageIgnoresGarbage(t *testing.T) {
	srv := newSiteServer(&mockRedemptionUC{})
	req := httptest.NewRequest(http.MethodGet, "/results?numbers=%7Bnot-json", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Não foi possível carregar") {
		t.Error("expected the empty-results fallback")
	}
}

func TestHealth(t *testing.T) {
	srv := newSiteServer(&mockRedemptionUC{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
