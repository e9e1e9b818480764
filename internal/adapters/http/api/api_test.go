package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/podium/internal/adapters/http/api"
	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/domain/record"
	. "github.com/smartystreets/goconvey/convey"
)

// mockService implements api.Dependencies and api.StatsProvider.
type mockService struct {
	records   []record.Record
	readErr   error
	submitErr error

	submittedName  string
	submittedScore float64
}

func (m *mockService) Leaderboard(ctx context.Context) ([]record.Record, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.records, nil
}

func (m *mockService) Submit(ctx context.Context, name string, score float64) ([]record.Record, error) {
	m.submittedName = name
	m.submittedScore = score
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return m.records, nil
}

func (m *mockService) GetStats() map[string]interface{} {
	return map[string]interface{}{"entries": len(m.records)}
}

func newTestMux(m *mockService, opts ...api.ServerOption) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(m, m, opts...).Register(context.Background(), mux)
	return mux
}

func decodeError(t *testing.T, body *strings.Reader) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	return resp.Error
}

func TestLeaderboardEndpoint(t *testing.T) {
	Convey("Given the leaderboard API", t, func() {
		board := []record.Record{
			{Name: "Ben", Score: 150, Date: "2026-01-02T00:00:00Z"},
			{Name: "Ann", Score: 100, Date: "2026-01-01T00:00:00Z"},
		}

		Convey("When GET succeeds", func() {
			mux := newTestMux(&mockService{records: board})
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			var got []record.Record
			So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
			So(got, ShouldHaveLength, 2)
			So(got[0].Name, ShouldEqual, "Ben")
		})

		Convey("When GET hits an unreadable store", func() {
			mux := newTestMux(&mockService{readErr: repository.ErrRead})
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))

			So(rec.Code, ShouldEqual, http.StatusInternalServerError)
			So(decodeError(t, strings.NewReader(rec.Body.String())), ShouldEqual, "internal server error")
		})

		Convey("When POST submits a valid score", func() {
			m := &mockService{records: board}
			mux := newTestMux(m)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/leaderboard",
				strings.NewReader(`{"name":"Ben","score":150}`))
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(m.submittedName, ShouldEqual, "Ben")
			So(m.submittedScore, ShouldEqual, 150)
			var got []record.Record
			So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
			So(got, ShouldHaveLength, 2)
		})

		Convey("When POST carries malformed JSON", func() {
			mux := newTestMux(&mockService{})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/leaderboard", strings.NewReader(`{oops`))
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(t, strings.NewReader(rec.Body.String())), ShouldNotBeEmpty)
		})

		Convey("When POST carries wrong field types", func() {
			mux := newTestMux(&mockService{})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/leaderboard",
				strings.NewReader(`{"name":123,"score":"high"}`))
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When POST omits the name", func() {
			mux := newTestMux(&mockService{})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/leaderboard",
				strings.NewReader(`{"score":10}`))
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(t, strings.NewReader(rec.Body.String())), ShouldContainSubstring, "name")
		})

		Convey("When POST omits the score", func() {
			mux := newTestMux(&mockService{})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/leaderboard",
				strings.NewReader(`{"name":"Ann"}`))
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(t, strings.NewReader(rec.Body.String())), ShouldContainSubstring, "score")
		})

		Convey("When the service rejects the submission", func() {
			mux := newTestMux(&mockService{submitErr: record.ErrValidation})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/leaderboard",
				strings.NewReader(`{"name":"   ","score":10}`))
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(t, strings.NewReader(rec.Body.String())), ShouldContainSubstring, "invalid submission")
		})

		Convey("When persisting fails", func() {
			mux := newTestMux(&mockService{submitErr: repository.ErrPersist})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/leaderboard",
				strings.NewReader(`{"name":"Ann","score":10}`))
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusInternalServerError)
			So(decodeError(t, strings.NewReader(rec.Body.String())), ShouldEqual, "internal server error")
		})

		Convey("When an unsupported method is used", func() {
			mux := newTestMux(&mockService{})
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/leaderboard", nil))

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestCORS(t *testing.T) {
	Convey("Given the leaderboard API", t, func() {
		mux := newTestMux(&mockService{})

		Convey("When a preflight OPTIONS arrives", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/leaderboard", nil))

			So(rec.Code, ShouldEqual, http.StatusNoContent)
			So(rec.Body.Len(), ShouldEqual, 0)
			So(rec.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
			So(rec.Header().Get("Access-Control-Allow-Methods"), ShouldEqual, "GET, POST, OPTIONS")
			So(rec.Header().Get("Access-Control-Allow-Headers"),
				ShouldEqual, "Origin, X-Requested-With, Content-Type, Accept")
		})

		Convey("When a plain GET arrives", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))

			So(rec.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
		})
	})
}

func TestRequestID(t *testing.T) {
	Convey("Given the leaderboard API", t, func() {
		mux := newTestMux(&mockService{})

		Convey("When the client sends no request id", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))

			So(rec.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
		})

		Convey("When the client sends its own request id", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
			req.Header.Set("X-Request-ID", "client-chosen")
			mux.ServeHTTP(rec, req)

			So(rec.Header().Get("X-Request-ID"), ShouldEqual, "client-chosen")
		})
	})
}

func TestRateLimit(t *testing.T) {
	Convey("Given an API limited to one submission", t, func() {
		mux := newTestMux(&mockService{}, api.WithRateLimit(0.0001, 1))

		post := func() *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/leaderboard",
				strings.NewReader(`{"name":"Ann","score":10}`))
			mux.ServeHTTP(rec, req)
			return rec
		}

		Convey("When two submissions arrive back to back", func() {
			first := post()
			second := post()

			So(first.Code, ShouldEqual, http.StatusOK)
			So(second.Code, ShouldEqual, http.StatusTooManyRequests)
			So(decodeError(t, strings.NewReader(second.Body.String())), ShouldEqual, "too many requests")
		})

		Convey("When reads arrive they are never limited", func() {
			for i := 0; i < 5; i++ {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))
				So(rec.Code, ShouldEqual, http.StatusOK)
			}
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the stats endpoint", t, func() {
		mux := newTestMux(&mockService{records: []record.Record{{Name: "Ann", Score: 1}}})

		Convey("When GET /stats is called", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			var stats map[string]interface{}
			So(json.Unmarshal(rec.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["entries"], ShouldEqual, 1)
		})
	})
}
