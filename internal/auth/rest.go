package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RESTProvider is a minimal HTTP client for an email/password identity
// provider API (identity-toolkit style accounts:* endpoints).
type RESTProvider struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// NewRESTProvider creates a provider client with sane defaults.
func NewRESTProvider(baseURL, apiKey string) *RESTProvider {
	return &RESTProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Timeout: 10 * time.Second,
	}
}

type accountResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

func (p *RESTProvider) SignUp(ctx context.Context, email, password string) (*ProviderUser, error) {
	body := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	var resp accountResponse
	if err := p.do(ctx, "accounts:signUp", body, &resp); err != nil {
		return nil, err
	}
	return providerUser(resp), nil
}

func (p *RESTProvider) SignIn(ctx context.Context, email, password string) (*ProviderUser, error) {
	body := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	var resp accountResponse
	if err := p.do(ctx, "accounts:signInWithPassword", body, &resp); err != nil {
		return nil, err
	}
	return providerUser(resp), nil
}

func (p *RESTProvider) UpdateProfile(ctx context.Context, idToken, displayName string) error {
	body := map[string]any{
		"idToken":           idToken,
		"displayName":       displayName,
		"returnSecureToken": false,
	}
	return p.do(ctx, "accounts:update", body, nil)
}

func (p *RESTProvider) SendPasswordReset(ctx context.Context, email string) error {
	body := map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}
	return p.do(ctx, "accounts:sendOobCode", body, nil)
}

func (p *RESTProvider) RevokeToken(ctx context.Context, refreshToken string) error {
	body := map[string]any{
		"refreshToken": refreshToken,
	}
	return p.do(ctx, "accounts:revokeToken", body, nil)
}

// do POSTs a JSON body to an accounts endpoint and decodes the response into
// out when out is non-nil. Non-2xx responses become ProviderError.
func (p *RESTProvider) do(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", p.BaseURL, endpoint, p.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := p.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: p.Timeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("call identity provider: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read identity response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ProviderError{
			Code:       errorCode(data),
			StatusCode: resp.StatusCode,
		}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode identity response: %w", err)
		}
	}

	return nil
}

// errorCode extracts the provider code from an error body of the form
// {"error": {"message": "EMAIL_EXISTS : extra detail"}}.
func errorCode(data []byte) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil || body.Error.Message == "" {
		return "UNKNOWN"
	}

	code := body.Error.Message
	if i := strings.IndexAny(code, " :"); i > 0 {
		code = code[:i]
	}
	return code
}

func providerUser(resp accountResponse) *ProviderUser {
	return &ProviderUser{
		UID:          resp.LocalID,
		Email:        resp.Email,
		DisplayName:  resp.DisplayName,
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
	}
}
