package syncing

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adplatformdomain "github.com/vfg2006/campaign-sync/infrastructure/integrator/adplatform/domain"
	adplatformmocks "github.com/vfg2006/campaign-sync/infrastructure/integrator/adplatform/mocks"
	"github.com/vfg2006/campaign-sync/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-sync/internal/config"
	"github.com/vfg2006/campaign-sync/internal/domain"
	"github.com/vfg2006/campaign-sync/internal/usecases/authenticating"
	authmocks "github.com/vfg2006/campaign-sync/internal/usecases/authenticating/mocks"
	"go.uber.org/mock/gomock"
)

const testToken = "tok-123"

func campaignsPage(hasMore bool, records ...string) *adplatformdomain.CampaignPage {
	data := make([]jsoniter.RawMessage, 0, len(records))
	for _, r := range records {
		data = append(data, jsoniter.RawMessage(r))
	}
	return &adplatformdomain.CampaignPage{Data: data, HasMore: hasMore}
}

func testConfig(timeout time.Duration) *config.Config {
	return &config.Config{
		Sync: config.Sync{
			PageSize:        10,
			CampaignTimeout: timeout,
		},
	}
}

type campaignIDMatcher string

func (m campaignIDMatcher) Matches(x any) bool {
	c, ok := x.(*domain.Campaign)
	return ok && c.ID == string(m)
}

func (m campaignIDMatcher) String() string {
	return "is campaign " + string(m)
}

func campaignWithID(id string) gomock.Matcher {
	return campaignIDMatcher(id)
}

func TestService_SyncAllCampaigns(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(auth *authmocks.MockAuthenticator, client *adplatformmocks.MockClient, repo *mocks.MockCampaignRepository)
		validate func(t *testing.T, result *domain.SyncResult, err error)
	}{
		{
			name: "Credenciais ausentes - ConfigError sem buscar campanhas",
			setup: func(auth *authmocks.MockAuthenticator, client *adplatformmocks.MockClient, repo *mocks.MockCampaignRepository) {
				auth.EXPECT().
					Authenticate(gomock.Any()).
					Return("", &authenticating.ConfigError{Missing: []string{"AD_PLATFORM_EMAIL"}})
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				var cfgErr *authenticating.ConfigError
				require.True(t, errors.As(err, &cfgErr))
				assert.Nil(t, result)
			},
		},
		{
			name: "Falha de autenticação é fatal",
			setup: func(auth *authmocks.MockAuthenticator, client *adplatformmocks.MockClient, repo *mocks.MockCampaignRepository) {
				auth.EXPECT().
					Authenticate(gomock.Any()).
					Return("", &authenticating.AuthenticationError{Err: authenticating.ErrAuthenticationFailed, StatusCode: http.StatusUnauthorized})
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				var authErr *authenticating.AuthenticationError
				require.True(t, errors.As(err, &authErr))
				assert.Nil(t, result)
			},
		},
		{
			name: "Página única com uma campanha - grava c1",
			setup: func(auth *authmocks.MockAuthenticator, client *adplatformmocks.MockClient, repo *mocks.MockCampaignRepository) {
				auth.EXPECT().Authenticate(gomock.Any()).Return(testToken, nil)

				client.EXPECT().
					ListCampaigns(gomock.Any(), testToken, 1, 10).
					Return(campaignsPage(false, `{"id":"c1","name":"Camp1","status":"ACTIVE","budget":500,"impressions":10,"clicks":2,"conversions":1,"created_at":"2024-01-01T00:00:00Z"}`), nil)

				client.EXPECT().
					SyncCampaign(gomock.Any(), testToken, "c1").
					Return(nil)

				repo.EXPECT().
					Upsert(gomock.Any()).
					DoAndReturn(func(c *domain.Campaign) error {
						assert.Equal(t, "c1", c.ID)
						assert.Equal(t, "Camp1", c.Name)
						assert.Empty(t, c.SyncedAt)
						assert.Equal(t, "ACTIVE", c.Attributes["status"])
						assert.Equal(t, float64(500), c.Attributes["budget"])
						assert.Equal(t, "2024-01-01T00:00:00Z", c.Attributes["created_at"])
						return nil
					})
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, result.Synced)
				assert.Equal(t, 1, result.Pages)
				assert.Equal(t, domain.SyncStopCompleted, result.StopReason)
				assert.NotEmpty(t, result.RunID)
			},
		},
		{
			name: "Registro sem id é ignorado e os seguintes continuam",
			setup: func(auth *authmocks.MockAuthenticator, client *adplatformmocks.MockClient, repo *mocks.MockCampaignRepository) {
				auth.EXPECT().Authenticate(gomock.Any()).Return(testToken, nil)

				client.EXPECT().
					ListCampaigns(gomock.Any(), testToken, 1, 10).
					Return(campaignsPage(false,
						`{"name":"No id"}`,
						`{"id":42,"name":"Numeric id"}`,
						`{"id":"c2","name":"Camp2"}`,
					), nil)

				client.EXPECT().SyncCampaign(gomock.Any(), testToken, "c2").Return(nil)
				repo.EXPECT().Upsert(campaignWithID("c2")).Return(nil)
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, result.Synced)
				assert.Equal(t, 2, result.Skipped)
				assert.Equal(t, 0, result.Failed)
			},
		},
		{
			name: "Falha na sincronização de uma campanha não interrompe a página",
			setup: func(auth *authmocks.MockAuthenticator, client *adplatformmocks.MockClient, repo *mocks.MockCampaignRepository) {
				auth.EXPECT().Authenticate(gomock.Any()).Return(testToken, nil)

				client.EXPECT().
					ListCampaigns(gomock.Any(), testToken, 1, 10).
					Return(campaignsPage(false, `{"id":"c1","name":"Camp1"}`, `{"id":"c2","name":"Camp2"}`), nil)

				gomock.InOrder(
					client.EXPECT().
						SyncCampaign(gomock.Any(), testToken, "c1").
						Return(adplatformdomain.NewAPIError(http.StatusInternalServerError, "500 Internal Server Error", nil)),
					client.EXPECT().
						SyncCampaign(gomock.Any(), testToken, "c2").
						Return(nil),
				)

				repo.EXPECT().Upsert(campaignWithID("c2")).Return(nil)
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, result.Synced)
				assert.Equal(t, 1, result.Failed)
			},
		},
		{
			name: "Timeout na sincronização - campanha não é gravada e a próxima é processada",
			setup: func(auth *authmocks.MockAuthenticator, client *adplatformmocks.MockClient, repo *mocks.MockCampaignRepository) {
				auth.EXPECT().Authenticate(gomock.Any()).Return(testToken, nil)

				client.EXPECT().
					ListCampaigns(gomock.Any(), testToken, 1, 10).
					Return(campaignsPage(false, `{"id":"slow","name":"Slow"}`, `{"id":"c2","name":"Camp2"}`), nil)

				client.EXPECT().
					SyncCampaign(gomock.Any(), testToken, "slow").
					DoAndReturn(func(ctx context.Context, _, _ string) error {
						_, hasDeadline := ctx.Deadline()
						assert.True(t, hasDeadline)
						<-ctx.Done()
						return ctx.Err()
					})
				client.EXPECT().SyncCampaign(gomock.Any(), testToken, "c2").Return(nil)

				repo.EXPECT().Upsert(campaignWithID("c2")).Return(nil)
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, result.Synced)
				assert.Equal(t, 1, result.Failed)
			},
		},
		{
			name: "429 na primeira página - encerra sem erro",
			setup: func(auth *authmocks.MockAuthenticator, client *adplatformmocks.MockClient, repo *mocks.MockCampaignRepository) {
				auth.EXPECT().Authenticate(gomock.Any()).Return(testToken, nil)

				client.EXPECT().
					ListCampaigns(gomock.Any(), testToken, 1, 10).
					Return(nil, adplatformdomain.NewAPIError(http.StatusTooManyRequests, "429 Too Many Requests", nil))
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0, result.Synced)
				assert.Equal(t, 0, result.Pages)
				assert.Equal(t, domain.SyncStopRateLimited, result.StopReason)
			},
		},
		{
			name: "Erro 500 na segunda página - mantém o que já foi sincronizado",
			setup: func(auth *authmocks.MockAuthenticator, client *adplatformmocks.MockClient, repo *mocks.MockCampaignRepository) {
				auth.EXPECT().Authenticate(gomock.Any()).Return(testToken, nil)

				gomock.InOrder(
					client.EXPECT().
						ListCampaigns(gomock.Any(), testToken, 1, 10).
						Return(campaignsPage(true, `{"id":"c1","name":"Camp1"}`), nil),
					client.EXPECT().
						ListCampaigns(gomock.Any(), testToken, 2, 10).
						Return(nil, adplatformdomain.NewAPIError(http.StatusBadGateway, "502 Bad Gateway", nil)),
				)

				client.EXPECT().SyncCampaign(gomock.Any(), testToken, "c1").Return(nil)
				repo.EXPECT().Upsert(campaignWithID("c1")).Return(nil)
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, result.Synced)
				assert.Equal(t, 1, result.Pages)
				assert.Equal(t, domain.SyncStopFetchFailed, result.StopReason)
			},
		},
		{
			name: "Duas páginas - busca page=1 e depois page=2, sem repetir",
			setup: func(auth *authmocks.MockAuthenticator, client *adplatformmocks.MockClient, repo *mocks.MockCampaignRepository) {
				auth.EXPECT().Authenticate(gomock.Any()).Return(testToken, nil)

				gomock.InOrder(
					client.EXPECT().
						ListCampaigns(gomock.Any(), testToken, 1, 10).
						Return(campaignsPage(true, `{"id":"c1","name":"Camp1"}`), nil).
						Times(1),
					client.EXPECT().SyncCampaign(gomock.Any(), testToken, "c1").Return(nil),
					client.EXPECT().
						ListCampaigns(gomock.Any(), testToken, 2, 10).
						Return(campaignsPage(false, `{"id":"c2","name":"Camp2"}`), nil).
						Times(1),
					client.EXPECT().SyncCampaign(gomock.Any(), testToken, "c2").Return(nil),
				)

				repo.EXPECT().Upsert(campaignWithID("c1")).Return(nil)
				repo.EXPECT().Upsert(campaignWithID("c2")).Return(nil)
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2, result.Synced)
				assert.Equal(t, 2, result.Pages)
				assert.Equal(t, domain.SyncStopCompleted, result.StopReason)
			},
		},
		{
			name: "Página vazia com has_more=false - termina sem sincronizar",
			setup: func(auth *authmocks.MockAuthenticator, client *adplatformmocks.MockClient, repo *mocks.MockCampaignRepository) {
				auth.EXPECT().Authenticate(gomock.Any()).Return(testToken, nil)
				client.EXPECT().
					ListCampaigns(gomock.Any(), testToken, 1, 10).
					Return(campaignsPage(false), nil)
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0, result.Synced)
				assert.Equal(t, 1, result.Pages)
			},
		},
		{
			name: "Erro ao gravar conta como falha",
			setup: func(auth *authmocks.MockAuthenticator, client *adplatformmocks.MockClient, repo *mocks.MockCampaignRepository) {
				auth.EXPECT().Authenticate(gomock.Any()).Return(testToken, nil)
				client.EXPECT().
					ListCampaigns(gomock.Any(), testToken, 1, 10).
					Return(campaignsPage(false, `{"id":"c1","name":"Camp1"}`), nil)
				client.EXPECT().SyncCampaign(gomock.Any(), testToken, "c1").Return(nil)
				repo.EXPECT().Upsert(campaignWithID("c1")).Return(errors.New("disk full"))
			},
			validate: func(t *testing.T, result *domain.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0, result.Synced)
				assert.Equal(t, 1, result.Failed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			auth := authmocks.NewMockAuthenticator(ctrl)
			client := adplatformmocks.NewMockClient(ctrl)
			repo := mocks.NewMockCampaignRepository(ctrl)
			tt.setup(auth, client, repo)

			service := NewService(auth, client, repo, testConfig(50*time.Millisecond))

			result, err := service.SyncAllCampaigns(context.Background())
			tt.validate(t, result, err)
		})
	}
}

func TestService_SyncAllCampaigns_Canceled(t *testing.T) {
	tests := []struct {
		name    string
		hasMore bool
	}{
		{name: "cancelado no meio de uma página com has_more=true", hasMore: true},
		{name: "cancelado no meio da última página", hasMore: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			auth := authmocks.NewMockAuthenticator(ctrl)
			client := adplatformmocks.NewMockClient(ctrl)
			repo := mocks.NewMockCampaignRepository(ctrl)

			auth.EXPECT().Authenticate(gomock.Any()).Return(testToken, nil)
			client.EXPECT().
				ListCampaigns(gomock.Any(), testToken, 1, 10).
				Return(campaignsPage(tt.hasMore, `{"id":"c1","name":"Camp1"}`, `{"id":"c2","name":"Camp2"}`), nil)
			client.EXPECT().
				SyncCampaign(gomock.Any(), testToken, "c1").
				DoAndReturn(func(context.Context, string, string) error {
					cancel()
					return nil
				})
			repo.EXPECT().Upsert(campaignWithID("c1")).Return(nil)

			result, err := NewService(auth, client, repo, testConfig(time.Second)).SyncAllCampaigns(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, result.Synced)
			assert.Equal(t, 1, result.Pages)
			assert.Equal(t, domain.SyncStopCanceled, result.StopReason)
		})
	}
}

func TestErrors(t *testing.T) {
	apiErr := adplatformdomain.NewAPIError(http.StatusTooManyRequests, "429 Too Many Requests", nil)
	fetchErr := newFetchError(3, apiErr)
	assert.True(t, fetchErr.RateLimited())
	assert.Equal(t, "failed to fetch campaigns (page 3). Status: 429", fetchErr.Error())
	assert.ErrorIs(t, fetchErr, apiErr)

	transportErr := newFetchError(1, errors.New("connection reset"))
	assert.False(t, transportErr.RateLimited())
	assert.Equal(t, "failed to fetch campaigns (page 1): connection reset", transportErr.Error())

	syncErr := &SyncError{CampaignID: "c1", Err: context.DeadlineExceeded}
	assert.True(t, syncErr.TimedOut())
	assert.Equal(t, "failed to sync campaign c1: context deadline exceeded", syncErr.Error())

	validationErr := &ValidationError{Page: 1, Index: 0, Err: adplatformdomain.ErrInvalidCampaign}
	assert.ErrorIs(t, validationErr, adplatformdomain.ErrInvalidCampaign)
}
