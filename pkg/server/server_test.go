package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lib-tools/library-atlas/pkg/models/api"
	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/models/store"
	"github.com/lib-tools/library-atlas/pkg/services/accounts"
	"github.com/lib-tools/library-atlas/pkg/services/auth"
	"github.com/lib-tools/library-atlas/pkg/store/postgres"
)

// memoryBorrowerStore backs the auth service with an in-memory account set so
// the routing tests can register and authenticate without a database.
type memoryBorrowerStore struct {
	accounts map[string]store.Borrower
}

func newMemoryBorrowerStore() *memoryBorrowerStore {
	return &memoryBorrowerStore{accounts: make(map[string]store.Borrower)}
}

func (s *memoryBorrowerStore) List(_ context.Context) ([]store.Borrower, error) {
	out := make([]store.Borrower, 0, len(s.accounts))
	for _, b := range s.accounts {
		out = append(out, b)
	}
	return out, nil
}

func (s *memoryBorrowerStore) GetByID(_ context.Context, id string) (*store.Borrower, error) {
	for _, b := range s.accounts {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (s *memoryBorrowerStore) GetByEmail(_ context.Context, email string) (*store.Borrower, error) {
	b, ok := s.accounts[email]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return &b, nil
}

func (s *memoryBorrowerStore) Add(_ context.Context, borrower store.Borrower) error {
	s.accounts[borrower.Email] = borrower
	return nil
}

func (s *memoryBorrowerStore) Update(_ context.Context, borrower store.Borrower) error {
	for email, b := range s.accounts {
		if b.ID == borrower.ID {
			delete(s.accounts, email)
			s.accounts[borrower.Email] = borrower
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (s *memoryBorrowerStore) Delete(_ context.Context, id string) error {
	for email, b := range s.accounts {
		if b.ID == id {
			delete(s.accounts, email)
			return nil
		}
	}
	return postgres.ErrNotFound
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateReport(ctx context.Context, req domain.ReportRequest) (*domain.ReportFile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportFile), args.Error(1)
}

func (m *mockGenerator) ExportLastMonthBorrowing(ctx context.Context, format domain.ReportFormat) (*domain.ReportFile, error) {
	args := m.Called(ctx, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportFile), args.Error(1)
}

func (m *mockGenerator) ExportLastMonthOverdue(ctx context.Context, format domain.ReportFormat) (*domain.ReportFile, error) {
	args := m.Called(ctx, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportFile), args.Error(1)
}

func (m *mockGenerator) GetStatistics(ctx context.Context, borrowerID string) (*domain.AnalyticsSummary, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalyticsSummary), args.Error(1)
}

func (m *mockGenerator) GetPeriodAnalytics(
	ctx context.Context,
	start, end time.Time,
	borrowerID string,
) (*domain.PeriodAnalytics, error) {
	args := m.Called(ctx, start, end, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodAnalytics), args.Error(1)
}

func setupTestServer(t *testing.T, gen *mockGenerator) *httptest.Server {
	borrowerStore := newMemoryBorrowerStore()
	authService, err := auth.NewService(borrowerStore, "test-secret")
	require.NoError(t, err)

	webAPI := NewWebAPI(zerolog.Nop(), Config{
		Addr: ":0",
		Dependencies: Dependencies{
			Auth:     authService,
			Accounts: accounts.NewService(borrowerStore),
			Reports:  gen,
		},
	})

	srv := httptest.NewServer(webAPI.Router())
	t.Cleanup(srv.Close)
	return srv
}

func registerBorrower(t *testing.T, srv *httptest.Server) api.AuthResponse {
	body := `{"name":"John Doe","email":"john@example.com","password":"secret1"}`
	resp, err := http.Post(srv.URL+"/api/auth/register", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var envelope struct {
		Status string           `json:"status"`
		Data   api.AuthResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NotEmpty(t, envelope.Data.Token)
	return envelope.Data
}

func authorizedRequest(t *testing.T, method, url, token, body string) *http.Request {
	var req *http.Request
	var err error
	if body != "" {
		req, err = http.NewRequest(method, url, bytes.NewBufferString(body))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestWebAPI_Health(t *testing.T) {
	srv := setupTestServer(t, new(mockGenerator))

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebAPI_AuthRequired(t *testing.T) {
	srv := setupTestServer(t, new(mockGenerator))

	paths := []string{
		"/api/reports/statistics",
		"/api/borrowing/history",
		"/api/books/",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestWebAPI_Statistics(t *testing.T) {
	gen := new(mockGenerator)
	srv := setupTestServer(t, gen)
	account := registerBorrower(t, srv)

	// A freshly registered borrower is not an administrator, so the fetch is
	// scoped to their own records.
	gen.On("GetStatistics", mock.Anything, account.Borrower.ID).Return(&domain.AnalyticsSummary{
		TotalRecords:       1,
		UniqueBorrowers:    1,
		UniqueBooks:        1,
		MostBorrowedBook:   "Test Book 1",
		MostActiveBorrower: "John Doe",
	}, nil)

	req := authorizedRequest(t, "GET", srv.URL+"/api/reports/statistics", account.Token, "")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Status string               `json:"status"`
		Data   api.AnalyticsSummary `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "success", envelope.Status)
	assert.Equal(t, "Test Book 1", envelope.Data.MostBorrowedBook)

	gen.AssertExpectations(t)
}

func TestWebAPI_GenerateReport(t *testing.T) {
	gen := new(mockGenerator)
	srv := setupTestServer(t, gen)
	account := registerBorrower(t, srv)

	gen.On("GenerateReport", mock.Anything, mock.MatchedBy(func(req domain.ReportRequest) bool {
		return req.Type == domain.ReportTypeBorrowing && req.BorrowerID == account.Borrower.ID
	})).Return(&domain.ReportFile{
		Data:     []byte("book_title\n"),
		MIMEType: "text/csv",
		Filename: "borrowing-report-2024-01-01.csv",
	}, nil)

	body := `{"start_date":"2024-01-01","end_date":"2024-01-31","report_type":"borrowing","format":"csv"}`
	req := authorizedRequest(t, "POST", srv.URL+"/api/reports/generate", account.Token, body)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Equal(
		t,
		"attachment; filename=borrowing-report-2024-01-01.csv",
		resp.Header.Get("Content-Disposition"),
	)

	gen.AssertExpectations(t)
}

func TestWebAPI_AdminOnlyRoutes(t *testing.T) {
	srv := setupTestServer(t, new(mockGenerator))
	account := registerBorrower(t, srv)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/borrowers/"},
		{"DELETE", "/api/borrowers/some-id"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			req := authorizedRequest(t, p.method, srv.URL+p.path, account.Token, "")
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestWebAPI_Profile(t *testing.T) {
	srv := setupTestServer(t, new(mockGenerator))
	account := registerBorrower(t, srv)

	t.Run("borrowers can read their own profile", func(t *testing.T) {
		req := authorizedRequest(t, "GET", srv.URL+"/api/borrowers/profile", account.Token, "")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var envelope struct {
			Status string       `json:"status"`
			Data   api.Borrower `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.Equal(t, "john@example.com", envelope.Data.Email)
	})

	t.Run("borrowers can change their own name", func(t *testing.T) {
		req := authorizedRequest(t, "PUT", srv.URL+"/api/borrowers/profile", account.Token, `{"name":"Jane Doe"}`)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var envelope struct {
			Status string       `json:"status"`
			Data   api.Borrower `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.Equal(t, "Jane Doe", envelope.Data.Name)
	})
}
