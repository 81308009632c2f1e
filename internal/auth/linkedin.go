package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"

	"cv-backend/internal/sessions"
	"cv-backend/internal/shared/server/respond"
	"cv-backend/internal/shared/telemetry"
)

const (
	defaultUserInfoURL = "https://api.linkedin.com/v2/userinfo"
	defaultTimeout     = 10 * time.Second
)

// Error markers carried back to the frontend.
const (
	ErrorNoCode        = "no_code"
	ErrorTokenFailed   = "token_failed"
	ErrorProfileFailed = "profile_failed"
)

var errUserInfo = errors.New("userinfo request failed")

// SessionInitializer seeds a session after a successful login.
type SessionInitializer interface {
	Initialize(ctx context.Context, identity sessions.Identity) (sessions.Session, error)
}

// LinkedInConfig configures the LinkedIn OpenID Connect flow. Empty URLs
// select LinkedIn's production endpoints.
type LinkedInConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	FrontendURL  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	Timeout      time.Duration
}

// LinkedInService handles LinkedIn OAuth flows.
type LinkedInService struct {
	oauthConfig *oauth2.Config
	userInfoURL string
	frontendURL string
	timeout     time.Duration
	sessions    SessionInitializer
}

// NewLinkedInService builds a LinkedInService.
func NewLinkedInService(cfg LinkedInConfig, initializer SessionInitializer) *LinkedInService {
	endpoint := linkedin.Endpoint
	endpoint.AuthStyle = oauth2.AuthStyleInParams
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = defaultUserInfoURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &LinkedInService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     endpoint,
		},
		userInfoURL: userInfoURL,
		frontendURL: strings.TrimRight(cfg.FrontendURL, "/"),
		timeout:     timeout,
		sessions:    initializer,
	}
}

// Configured reports whether the login redirect can be built.
func (s *LinkedInService) Configured() bool {
	return s.oauthConfig.ClientID != "" && s.oauthConfig.RedirectURL != ""
}

// RegisterRoutes attaches LinkedIn auth routes.
func (s *LinkedInService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/login", s.login)
	rg.GET("/oauth/callback", s.callback)
}

func (s *LinkedInService) login(c *gin.Context) {
	if !s.Configured() {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "LinkedIn auth not configured", nil)
		return
	}
	// The state is not checked on callback.
	state := uuid.NewString()
	c.Redirect(http.StatusFound, s.oauthConfig.AuthCodeURL(state))
}

func (s *LinkedInService) callback(c *gin.Context) {
	if providerErr := strings.TrimSpace(c.Query("error")); providerErr != "" {
		telemetry.Warn("auth.provider_error", map[string]any{
			"error":       providerErr,
			"description": c.Query("error_description"),
		})
		s.redirectError(c, providerErr)
		return
	}
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		s.redirectError(c, ErrorNoCode)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: s.timeout})

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		telemetry.Warn("auth.token_failed", map[string]any{"error": err.Error()})
		s.redirectError(c, ErrorTokenFailed)
		return
	}

	identity, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		telemetry.Warn("auth.profile_failed", map[string]any{"error": err.Error()})
		s.redirectError(c, ErrorProfileFailed)
		return
	}

	if _, err := s.sessions.Initialize(c.Request.Context(), identity); err != nil {
		telemetry.Error("auth.session_failed", map[string]any{"user_id": identity.ID, "error": err.Error()})
		s.redirectError(c, ErrorProfileFailed)
		return
	}
	telemetry.Info("auth.login", map[string]any{"user_id": identity.ID})

	q := url.Values{}
	q.Set("user_id", identity.ID)
	c.Redirect(http.StatusFound, s.frontendURL+"/cv-editor?"+q.Encode())
}

func (s *LinkedInService) redirectError(c *gin.Context, marker string) {
	q := url.Values{}
	q.Set("error", marker)
	c.Redirect(http.StatusFound, s.frontendURL+"/?"+q.Encode())
}

type linkedInUserInfo struct {
	Sub        string `json:"sub"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
}

func (s *LinkedInService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (sessions.Identity, error) {
	client := s.oauthConfig.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return sessions.Identity{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return sessions.Identity{}, fmt.Errorf("%w: %v", errUserInfo, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return sessions.Identity{}, fmt.Errorf("%w: %v", errUserInfo, err)
	}
	if resp.StatusCode != http.StatusOK {
		return sessions.Identity{}, fmt.Errorf("%w: status %d", errUserInfo, resp.StatusCode)
	}

	var info linkedInUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return sessions.Identity{}, fmt.Errorf("%w: %v", errUserInfo, err)
	}
	if strings.TrimSpace(info.Sub) == "" {
		return sessions.Identity{}, fmt.Errorf("%w: missing sub", errUserInfo)
	}

	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = strings.TrimSpace(info.GivenName + " " + info.FamilyName)
	}
	return sessions.Identity{
		ID:        info.Sub,
		Name:      name,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
		Email:     info.Email,
		Picture:   info.Picture,
		Raw:       json.RawMessage(body),
	}, nil
}
