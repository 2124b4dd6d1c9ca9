package authenticating

import (
	"errors"
	"fmt"
	"strings"
)

// Erros de autenticação junto à plataforma de anúncios
var (
	ErrMissingCredentials   = errors.New("missing ad platform credentials")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrMissingAccessToken   = errors.New("access token missing from auth response")
)

// ConfigError indica credenciais ausentes. Ocorre antes de qualquer chamada de rede.
type ConfigError struct {
	Missing []string // variáveis de ambiente não definidas
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingCredentials.Error(), strings.Join(e.Missing, ", "))
}

func (e *ConfigError) Unwrap() error {
	return ErrMissingCredentials
}

// AuthenticationError indica que não foi possível obter o bearer token
type AuthenticationError struct {
	Err        error // ErrAuthenticationFailed ou ErrMissingAccessToken
	StatusCode int   // status HTTP devolvido, quando houve resposta
	Details    string
}

func (e *AuthenticationError) Error() string {
	msg := e.Err.Error()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}
