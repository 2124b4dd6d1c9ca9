package syncing

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	adplatformdomain "github.com/vfg2006/campaign-sync/infrastructure/integrator/adplatform/domain"
)

// Erros tratados localmente: nenhum deles interrompe a execução com erro.
// Apenas os erros de authenticating (ConfigError, AuthenticationError) são fatais.

// FetchError indica falha ao buscar uma página; encerra o laço de paginação
type FetchError struct {
	Page       int
	StatusCode int // zero quando não houve resposta HTTP
	Err        error
}

func newFetchError(page int, err error) *FetchError {
	fetchErr := &FetchError{Page: page, Err: err}

	var apiErr *adplatformdomain.APIError
	if errors.As(err, &apiErr) {
		fetchErr.StatusCode = apiErr.StatusCode
	}

	return fetchErr
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch campaigns (page %d). Status: %d", e.Page, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch campaigns (page %d): %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RateLimited indica HTTP 429
func (e *FetchError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// ValidationError indica um registro de campanha malformado; o registro é ignorado
type ValidationError struct {
	Page  int
	Index int
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid campaign record (page %d, index %d): %v", e.Page, e.Index, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// SyncError indica falha ou timeout na sincronização de uma campanha
type SyncError struct {
	CampaignID string
	Err        error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("failed to sync campaign %s: %v", e.CampaignID, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func (e *SyncError) TimedOut() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}
