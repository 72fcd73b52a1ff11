package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/atshaw/quill/internal/domain"
	"github.com/atshaw/quill/internal/logger"
	"github.com/atshaw/quill/internal/utils"
)

// StateCookieName holds the handshake nonce between redirect and callback.
// No other request state survives the handshake suspension.
const StateCookieName = "quill_oauth_state"

// Google's endpoints are the defaults; tests point these at an httptest server.
const (
	defaultAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	defaultTokenURL    = "https://oauth2.googleapis.com/token"
	defaultUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

// Identity is what the provider asserts about the caller.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GateConfig configures the identity gate.
type GateConfig struct {
	ClientID        string
	ClientSecret    string
	RedirectURL     string
	AuthorizedEmail string

	// Optional endpoint overrides (defaults: Google).
	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

// Gate decides Anonymous vs Authenticated. It runs the auth-code handshake
// with the identity provider and accepts exactly one email address.
type Gate struct {
	oauth           *oauth2.Config
	userInfoURL     string
	authorizedEmail string
	logger          logger.Logger
}

// NewGate creates an identity gate for a single authorized operator.
func NewGate(cfg GateConfig, log logger.Logger) *Gate {
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = defaultAuthURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = defaultUserInfoURL
	}

	return &Gate{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
		userInfoURL:     userInfoURL,
		authorizedEmail: cfg.AuthorizedEmail,
		logger:          log,
	}
}

// BeginHandshake stores a state nonce in a short-lived cookie and redirects
// to the provider's consent page.
func (g *Gate) BeginHandshake(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, g.oauth.AuthCodeURL(state), http.StatusFound)
}

// VerifyState checks the callback's state parameter against the nonce cookie.
func (g *Gate) VerifyState(r *http.Request, state string) bool {
	if state == "" {
		return false
	}
	cookie, err := r.Cookie(StateCookieName)
	if err != nil {
		return false
	}
	return cookie.Value == state
}

// CompleteHandshake exchanges the callback code, fetches the provider's
// userinfo document, and returns the identity only when its email exactly
// matches the authorized operator. Anything else is ErrIdentityRejected.
func (g *Gate) CompleteHandshake(ctx context.Context, code string) (Identity, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return Identity{}, fmt.Errorf("token exchange failed: %w", err)
	}

	resp, err := g.oauth.Client(ctx, token).Get(g.userInfoURL)
	if err != nil {
		return Identity{}, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("userinfo request failed: status %d", resp.StatusCode)
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return Identity{}, fmt.Errorf("failed to decode userinfo: %w", err)
	}

	if identity.Email != g.authorizedEmail {
		g.logger.Warn("login attempt by unauthorized identity",
			logger.String("email", identity.Email))
		return Identity{}, fmt.Errorf("%s: %w", identity.Email, domain.ErrIdentityRejected)
	}

	g.logger.Info("operator authenticated", logger.String("email", identity.Email))
	return identity, nil
}
