package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerpulse/auth-backend/internal/apperrors"
	"github.com/sellerpulse/auth-backend/internal/core/domain"
	"github.com/sellerpulse/auth-backend/internal/core/services"
	"github.com/sellerpulse/auth-backend/internal/platform/config"
)

// fakeSellerTokenRepo is an in-memory SellerTokenRepositoryFacade.
type fakeSellerTokenRepo struct {
	records map[string]domain.SellerToken
	upserts int
}

func newFakeSellerTokenRepo() *fakeSellerTokenRepo {
	return &fakeSellerTokenRepo{records: map[string]domain.SellerToken{}}
}

func (f *fakeSellerTokenRepo) FindBySellerID(ctx context.Context, sellerID string) (*domain.SellerToken, error) {
	record, ok := f.records[sellerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &record, nil
}

func (f *fakeSellerTokenRepo) UpsertSellerToken(ctx context.Context, token domain.SellerToken) error {
	f.upserts++
	f.records[token.SellerID] = token
	return nil
}

// lwaTestServer fakes Amazon's token endpoint for both the authorization_code
// and refresh_token grants.
func lwaTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		resp := map[string]any{
			"token_type": "bearer",
			"expires_in": 3600,
		}
		switch r.Form.Get("grant_type") {
		case "authorization_code":
			resp["access_token"] = "access-" + r.Form.Get("code")
			resp["refresh_token"] = "refresh-" + r.Form.Get("code")
		case "refresh_token":
			resp["access_token"] = "refreshed-access-token"
		default:
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func sellerTestConfig(tokenURL string) *config.Config {
	return &config.Config{
		AmazonClientID:     "amzn1.application-oa2-client.test",
		AmazonClientSecret: "client-secret",
		AmazonRedirectURI:  "https://api.example.com/api/amazon/callback",
		AmazonTokenURL:     tokenURL,
	}
}

func TestAuthorizationURL_KnownRegions(t *testing.T) {
	svc := services.NewSellerTokenService(sellerTestConfig("http://unused"), newFakeSellerTokenRepo())

	url, err := svc.AuthorizationURL("na")
	require.NoError(t, err)
	assert.Equal(t, "https://sellercentral.amazon.com/apps/authorize/consent?application_id=amzn1.application-oa2-client.test&version=beta", url)

	url, err = svc.AuthorizationURL("eu")
	require.NoError(t, err)
	assert.Contains(t, url, "sellercentral-europe.amazon.com")

	url, err = svc.AuthorizationURL("in")
	require.NoError(t, err)
	assert.Contains(t, url, "sellercentral.amazon.in")
}

func TestAuthorizationURL_UnknownRegion(t *testing.T) {
	svc := services.NewSellerTokenService(sellerTestConfig("http://unused"), newFakeSellerTokenRepo())

	_, err := svc.AuthorizationURL("mars")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestHandleCallback_StoresTokenPair(t *testing.T) {
	server := lwaTestServer(t)
	defer server.Close()
	repo := newFakeSellerTokenRepo()
	svc := services.NewSellerTokenService(sellerTestConfig(server.URL), repo)

	err := svc.HandleCallback(context.Background(), "authcode1", "SELLER1", "ATVPDKIKX0DER")
	require.NoError(t, err)

	record := repo.records["SELLER1"]
	assert.Equal(t, "refresh-authcode1", record.RefreshToken)
	assert.Equal(t, "access-authcode1", record.AccessToken)
	assert.Equal(t, "ATVPDKIKX0DER", record.MarketplaceID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), record.TokenExpiresAt, 10*time.Second)
}

func TestHandleCallback_RepeatedCallbackUpdatesSingleRecord(t *testing.T) {
	server := lwaTestServer(t)
	defer server.Close()
	repo := newFakeSellerTokenRepo()
	svc := services.NewSellerTokenService(sellerTestConfig(server.URL), repo)

	require.NoError(t, svc.HandleCallback(context.Background(), "first", "SELLER1", "ATVPDKIKX0DER"))
	require.NoError(t, svc.HandleCallback(context.Background(), "second", "SELLER1", "ATVPDKIKX0DER"))

	assert.Len(t, repo.records, 1)
	assert.Equal(t, 2, repo.upserts)
	assert.Equal(t, "refresh-second", repo.records["SELLER1"].RefreshToken)
}

func TestHandleCallback_ExchangeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer server.Close()
	repo := newFakeSellerTokenRepo()
	svc := services.NewSellerTokenService(sellerTestConfig(server.URL), repo)

	err := svc.HandleCallback(context.Background(), "badcode", "SELLER1", "ATVPDKIKX0DER")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDependency)
	assert.Empty(t, repo.records)
}

func TestRefreshSellerToken_UpdatesAccessTokenOnly(t *testing.T) {
	server := lwaTestServer(t)
	defer server.Close()
	repo := newFakeSellerTokenRepo()
	repo.records["SELLER1"] = domain.SellerToken{
		SellerID:       "SELLER1",
		MarketplaceID:  "ATVPDKIKX0DER",
		RefreshToken:   "stored-refresh-token",
		AccessToken:    "stale-access-token",
		TokenExpiresAt: time.Now().Add(-time.Hour),
	}
	svc := services.NewSellerTokenService(sellerTestConfig(server.URL), repo)

	err := svc.RefreshSellerToken(context.Background(), "SELLER1")
	require.NoError(t, err)

	record := repo.records["SELLER1"]
	assert.Equal(t, "refreshed-access-token", record.AccessToken)
	// The refresh grant does not rotate the stored refresh token.
	assert.Equal(t, "stored-refresh-token", record.RefreshToken)
	assert.True(t, record.TokenExpiresAt.After(time.Now()))
}

func TestRefreshSellerToken_UnknownSeller(t *testing.T) {
	svc := services.NewSellerTokenService(sellerTestConfig("http://unused"), newFakeSellerTokenRepo())

	err := svc.RefreshSellerToken(context.Background(), "NOBODY")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
