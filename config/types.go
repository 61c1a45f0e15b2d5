package config

// Provenance values for sources, custom categories and live channels.
// Entries that came in through the subscribed config file may be pruned
// again when the upstream file drops them; admin-created entries may not.
const (
	FromConfig = "config" // imported from the subscription file
	FromCustom = "custom" // created by an administrator
)

// User roles.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// SourceConfig is a single upstream video API site.
type SourceConfig struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	API      string `json:"api"`
	Detail   string `json:"detail,omitempty"`
	From     string `json:"from"`
	Disabled bool   `json:"disabled"`
	IsAdult  bool   `json:"is_adult,omitempty"`
	Type     string `json:"type,omitempty"` // "vod" by default
}

// CustomCategory is a saved search shown as a category. Identity is the
// (query, type) pair, not the display name.
type CustomCategory struct {
	Name     string `json:"name,omitempty"`
	Type     string `json:"type"` // "movie" or "tv"
	Query    string `json:"query"`
	From     string `json:"from"`
	Disabled bool   `json:"disabled"`
}

// LiveConfig is a live channel source.
type LiveConfig struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	URL           string `json:"url"`
	UA            string `json:"ua,omitempty"`
	EPG           string `json:"epg,omitempty"`
	IsTVBox       bool   `json:"isTvBox,omitempty"`
	ChannelNumber int    `json:"channelNumber"`
	From          string `json:"from"`
	Disabled      bool   `json:"disabled"`
}

// UserEntry is a user's entry inside the config document. The authoritative
// list of registered usernames lives in the database; SelfCheck keeps the
// two in sync.
type UserEntry struct {
	Username            string   `json:"username"`
	Role                string   `json:"role"`
	Banned              bool     `json:"banned"`
	CreatedAt           int64    `json:"createdAt,omitempty"`
	OidcSub             string   `json:"oidcSub,omitempty"`
	Tags                []string `json:"tags,omitempty"`
	EnabledAPIs         []string `json:"enabledApis,omitempty"`
	ShowAdultContent    *bool    `json:"showAdultContent,omitempty"`
	TVBoxToken          string   `json:"tvboxToken,omitempty"`
	TVBoxEnabledSources []string `json:"tvboxEnabledSources,omitempty"`
}

// Tag is a user group. Users reference tags by name.
type Tag struct {
	Name             string   `json:"name"`
	EnabledAPIs      []string `json:"enabledApis,omitempty"`
	ShowAdultContent *bool    `json:"showAdultContent,omitempty"`
}

type UserConfig struct {
	AllowRegister *bool       `json:"AllowRegister,omitempty"`
	Users         []UserEntry `json:"Users"`
	Tags          []Tag       `json:"Tags,omitempty"`
}

type SiteConfig struct {
	SiteName                string `json:"SiteName"`
	Announcement            string `json:"Announcement"`
	SearchDownstreamMaxPage int    `json:"SearchDownstreamMaxPage"`
	SiteInterfaceCacheTime  int    `json:"SiteInterfaceCacheTime"`
	DoubanProxyType         string `json:"DoubanProxyType"`
	DoubanProxy             string `json:"DoubanProxy"`
	DoubanImageProxyType    string `json:"DoubanImageProxyType"`
	DoubanImageProxy        string `json:"DoubanImageProxy"`
	DisableYellowFilter     bool   `json:"DisableYellowFilter"`
	ShowAdultContent        bool   `json:"ShowAdultContent"`
	FluidSearch             bool   `json:"FluidSearch"`
	TMDBAPIKey              string `json:"TMDBApiKey"`
	TMDBLanguage            string `json:"TMDBLanguage"`
	EnableTMDBActorSearch   bool   `json:"EnableTMDBActorSearch"`
}

// ConfigSubscription records where the config file is subscribed from.
// The json key keeps the historical spelling so persisted documents from
// older deployments keep loading.
type ConfigSubscription struct {
	URL        string `json:"URL"`
	AutoUpdate bool   `json:"AutoUpdate"`
	LastCheck  string `json:"LastCheck"`
}

type NetDiskConfig struct {
	Enabled           bool     `json:"enabled"`
	PansouURL         string   `json:"pansouUrl"`
	Timeout           int      `json:"timeout"` // seconds
	EnabledCloudTypes []string `json:"enabledCloudTypes"`
}

type AIRecommendConfig struct {
	Enabled     bool    `json:"enabled"`
	APIURL      string  `json:"apiUrl"`
	APIKey      string  `json:"apiKey"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

type YouTubeConfig struct {
	Enabled           bool     `json:"enabled"`
	APIKey            string   `json:"apiKey"`
	EnableDemo        bool     `json:"enableDemo"`
	MaxResults        int      `json:"maxResults"`
	EnabledRegions    []string `json:"enabledRegions"`
	EnabledCategories []string `json:"enabledCategories"`
}

type ShortDramaConfig struct {
	PrimaryAPIURL     string `json:"primaryApiUrl"`
	AlternativeAPIURL string `json:"alternativeApiUrl"`
	EnableAlternative bool   `json:"enableAlternative"`
}

type DownloadConfig struct {
	Enabled bool `json:"enabled"`
}

type DoubanConfig struct {
	EnablePuppeteer bool `json:"enablePuppeteer"`
}

type CronConfig struct {
	EnableAutoRefresh  bool `json:"enableAutoRefresh"`
	MaxRecordsPerRun   int  `json:"maxRecordsPerRun"`
	OnlyRefreshRecent  bool `json:"onlyRefreshRecent"`
	RecentDays         int  `json:"recentDays"`
	OnlyRefreshOngoing bool `json:"onlyRefreshOngoing"`
}

type VideoProxyConfig struct {
	Enabled  bool   `json:"enabled"`
	ProxyURL string `json:"proxyUrl"`
}

type TVBoxSecurityConfig struct {
	EnableAuth        bool     `json:"enableAuth"`
	Token             string   `json:"token"`
	EnableIPWhitelist bool     `json:"enableIpWhitelist"`
	AllowedIPs        []string `json:"allowedIPs"`
	EnableRateLimit   bool     `json:"enableRateLimit"`
	RateLimit         int      `json:"rateLimit"` // requests per minute
}

// OIDCAuthConfig is the deprecated single-provider auth config. It is kept
// on the document after migration so a rollback still finds it.
type OIDCAuthConfig struct {
	Enabled               bool   `json:"enabled"`
	EnableRegistration    bool   `json:"enableRegistration"`
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorizationEndpoint,omitempty"`
	TokenEndpoint         string `json:"tokenEndpoint,omitempty"`
	UserInfoEndpoint      string `json:"userInfoEndpoint,omitempty"`
	ClientID              string `json:"clientId"`
	ClientSecret          string `json:"clientSecret"`
	ButtonText            string `json:"buttonText,omitempty"`
	MinTrustLevel         int    `json:"minTrustLevel,omitempty"`
}

// OIDCProvider is one entry of the current multi-provider auth config.
type OIDCProvider struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Enabled               bool   `json:"enabled"`
	EnableRegistration    bool   `json:"enableRegistration"`
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorizationEndpoint,omitempty"`
	TokenEndpoint         string `json:"tokenEndpoint,omitempty"`
	UserInfoEndpoint      string `json:"userInfoEndpoint,omitempty"`
	ClientID              string `json:"clientId"`
	ClientSecret          string `json:"clientSecret"`
	ButtonText            string `json:"buttonText,omitempty"`
	MinTrustLevel         int    `json:"minTrustLevel,omitempty"`
}

// AdminConfig is the single global configuration document. It is persisted
// as one JSON row, created on first access, repaired by SelfCheck on every
// read and only ever replaced, never deleted.
type AdminConfig struct {
	ConfigFile         string               `json:"ConfigFile"`
	ConfigSubscription ConfigSubscription   `json:"ConfigSubscribtion"`
	SiteConfig         SiteConfig           `json:"SiteConfig"`
	UserConfig         UserConfig           `json:"UserConfig"`
	SourceConfig       []SourceConfig       `json:"SourceConfig"`
	CustomCategories   []CustomCategory     `json:"CustomCategories"`
	LiveConfig         []LiveConfig         `json:"LiveConfig"`
	NetDiskConfig      *NetDiskConfig       `json:"NetDiskConfig,omitempty"`
	AIRecommendConfig  *AIRecommendConfig   `json:"AIRecommendConfig,omitempty"`
	YouTubeConfig      *YouTubeConfig       `json:"YouTubeConfig,omitempty"`
	ShortDramaConfig   *ShortDramaConfig    `json:"ShortDramaConfig,omitempty"`
	DownloadConfig     *DownloadConfig      `json:"DownloadConfig,omitempty"`
	DoubanConfig       *DoubanConfig        `json:"DoubanConfig,omitempty"`
	CronConfig         *CronConfig          `json:"CronConfig,omitempty"`
	VideoProxyConfig   *VideoProxyConfig    `json:"VideoProxyConfig,omitempty"`
	TVBoxSecurity      *TVBoxSecurityConfig `json:"TVBoxSecurityConfig,omitempty"`
	OIDCAuthConfig     *OIDCAuthConfig      `json:"OIDCAuthConfig,omitempty"`
	OIDCProviders      []OIDCProvider       `json:"OIDCProviders,omitempty"`
}

// UserProfile is the per-user record the Store keeps outside the document.
// SelfCheck pulls it in when it synthesizes a missing UserEntry.
type UserProfile struct {
	CreatedAt   int64
	OidcSub     string
	Tags        []string
	Role        string
	Banned      bool
	EnabledAPIs []string
}

// Store is what the engine needs from persistence. The gorm-backed
// implementation lives in database/store; tests supply an in-memory one.
type Store interface {
	LoadDocument() (*AdminConfig, error)
	SaveDocument(*AdminConfig) error
	ListUsernames() ([]string, error)
	LoadUserProfile(username string) (*UserProfile, error)
}
