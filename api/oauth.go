package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/zt6453928/lunatv-enhanced/config"
	"github.com/zt6453928/lunatv-enhanced/database/accounts"
	"github.com/zt6453928/lunatv-enhanced/database/store"
	"github.com/zt6453928/lunatv-enhanced/utils"
)

// stateCache holds pending OAuth states to reject forged callbacks.
var stateCache = cache.New(10*time.Minute, 20*time.Minute)

var oauthClient = &http.Client{Timeout: 15 * time.Second}

// OAuthAuthorize redirects the browser to the chosen OIDC provider.
func OAuthAuthorize(c *gin.Context) {
	providerID := c.Param("provider")
	cfg := config.Get(store.New())

	provider := findProvider(cfg, providerID)
	if provider == nil || !provider.Enabled {
		RespondError(c, http.StatusNotFound, "Unknown or disabled provider")
		return
	}

	state := utils.GenerateRandomString(16)
	stateCache.Set(state, provider.ID, cache.DefaultExpiration)

	authURL := fmt.Sprintf(
		"%s?client_id=%s&state=%s&scope=%s&redirect_uri=%s&response_type=code",
		provider.AuthorizationEndpoint,
		url.QueryEscape(provider.ClientID),
		url.QueryEscape(state),
		url.QueryEscape("openid profile"),
		url.QueryEscape(callbackURL(c)),
	)
	c.Redirect(http.StatusFound, authURL)
}

// OAuthCallback exchanges the authorization code, looks the user up by
// OIDC subject and opens a session.
func OAuthCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		RespondError(c, http.StatusBadRequest, "Missing state or code")
		return
	}
	providerID, ok := stateCache.Get(state)
	if !ok {
		RespondError(c, http.StatusBadRequest, "Invalid state")
		return
	}
	stateCache.Delete(state)

	cfg := config.Get(store.New())
	provider := findProvider(cfg, providerID.(string))
	if provider == nil || !provider.Enabled {
		RespondError(c, http.StatusNotFound, "Unknown or disabled provider")
		return
	}

	accessToken, err := exchangeCode(provider, code, callbackURL(c))
	if err != nil {
		RespondError(c, http.StatusBadGateway, "Token exchange failed: "+err.Error())
		return
	}

	sub, username, err := fetchUserInfo(provider, accessToken)
	if err != nil {
		RespondError(c, http.StatusBadGateway, "Userinfo fetch failed: "+err.Error())
		return
	}

	user, err := accounts.GetUserByOidcSub(sub)
	if err != nil {
		allowRegister := cfg.UserConfig.AllowRegister == nil || *cfg.UserConfig.AllowRegister
		if !provider.EnableRegistration || !allowRegister {
			RespondError(c, http.StatusForbidden, "Registration is disabled")
			return
		}
		user, err = accounts.GetOrCreateUserByOIDC(sub, username)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "Failed to create account")
			return
		}
	}
	if user.Banned {
		RespondError(c, http.StatusForbidden, "Account banned")
		return
	}

	session, err := accounts.CreateSession(user.UUID, 2592000)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to create session")
		return
	}
	c.SetCookie("session_token", session, 2592000, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// callbackURL builds the redirect_uri sent to the provider. Deployments
// sit behind a TLS-terminating proxy, so the forwarded proto header wins
// over the direct connection state.
func callbackURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.Request.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + "/api/oauth_callback"
}

func findProvider(cfg *config.AdminConfig, id string) *config.OIDCProvider {
	for i := range cfg.OIDCProviders {
		if cfg.OIDCProviders[i].ID == id {
			return &cfg.OIDCProviders[i]
		}
	}
	return nil
}

func exchangeCode(provider *config.OIDCProvider, code, redirectURI string) (string, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {redirectURI},
		"client_id":     {provider.ClientID},
		"client_secret": {provider.ClientSecret},
	}
	resp, err := oauthClient.Post(provider.TokenEndpoint,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("no access token in response")
	}
	return token.AccessToken, nil
}

func fetchUserInfo(provider *config.OIDCProvider, accessToken string) (sub, username string, err error) {
	req, err := http.NewRequest(http.MethodGet, provider.UserInfoEndpoint, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := oauthClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", "", err
	}
	var info struct {
		Sub               string `json:"sub"`
		PreferredUsername string `json:"preferred_username"`
		Name              string `json:"name"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return "", "", err
	}
	if info.Sub == "" {
		return "", "", fmt.Errorf("no subject in userinfo response")
	}
	username = info.PreferredUsername
	if username == "" {
		username = info.Name
	}
	if username == "" {
		username = info.Sub
	}
	return info.Sub, username, nil
}
