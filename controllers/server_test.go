package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"wardrobeapi/services"
	"wardrobeapi/stylist"
	"wardrobeapi/tasks"
	"wardrobeapi/test"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	e         *echo.Echo
	stores    services.Stores
	proposals services.ProposalCache
	urlCache  *test.URLCacheMock
	enqueuer  *test.EnqueuerMock
}

type testServerOptions struct {
	aws       services.AWSServiceProvider
	proposals services.ProposalCache
	// builds the enqueuer over the server stores, nil keeps the recording mock
	enqueuer func(stores services.Stores) tasks.Enqueuer
}

func setupTestServer(t *testing.T, aws services.AWSServiceProvider) testServer {
	t.Helper()
	return newTestServer(t, testServerOptions{aws: aws})
}

func newTestServer(t *testing.T, opts testServerOptions) testServer {
	t.Helper()
	if opts.aws == nil {
		opts.aws = test.AWSProviderMock{MockUrl: "https://direct.example.com/photo.jpg"}
	}
	if opts.proposals == nil {
		proposals, err := services.NewProposalCache(services.DefaultCacheSize, services.ProposalTTL)
		require.NoError(t, err)
		opts.proposals = proposals
	}
	s := testServer{
		stores:    services.NewMemoryStores(),
		proposals: opts.proposals,
		urlCache:  &test.URLCacheMock{},
		enqueuer:  &test.EnqueuerMock{},
	}
	var enqueuer tasks.Enqueuer = s.enqueuer
	if opts.enqueuer != nil {
		enqueuer = opts.enqueuer(s.stores)
	}
	s.e = SetupServer(
		s.stores, opts.aws, s.urlCache, s.proposals, enqueuer,
		stylist.NewAssembler(stylist.FixedSource(0.5), nil),
		Settings{JWTSecret: test.JWTSecret, BucketName: "wardrobe-test"},
	)
	return s
}

func (s testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := setupTestServer(t, nil)

	req := test.NewJSONRequest("GET", "/wardrobe/profile", "")
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := s.do(req)
	assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))

	rec = s.do(test.NewJSONRequest("GET", "/wardrobe/profile", ""))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
