package config

type Database struct {
	Host     string `mapstructure:"DATABASE_HOST" default:"localhost"`
	Port     int    `mapstructure:"DATABASE_PORT" default:"5432"`
	Name     string `mapstructure:"DATABASE_NAME" default:"chemmanager"`
	User     string `mapstructure:"DATABASE_USER" default:"postgres"`
	Password string `mapstructure:"DATABASE_PASSWORD" default:"chemmanager"`
}

type Redis struct {
	Host     string `mapstructure:"REDIS_HOST" default:"127.0.0.1"`
	Port     int    `mapstructure:"REDIS_PORT" default:"6379"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" default:"0"`
}

type Server struct {
	Platform string `mapstructure:"PLATFORM" default:"chemmanager"`
	Service  string `mapstructure:"SERVICE" default:"api"`
	Port     int    `mapstructure:"WEB_PORT" default:"8080"`
	Env      string `mapstructure:"ENV" default:"dev"`
}

type OAuth2 struct {
	ClientID     string   `mapstructure:"OAUTH2_CLIENT_ID"`
	ClientSecret string   `mapstructure:"OAUTH2_CLIENT_SECRET"`
	Scopes       []string `mapstructure:"OAUTH2_SCOPES" default:"[\"read\",\"write\",\"offline_access\"]"`
	TokenURL     string   `mapstructure:"OAUTH2_TOKEN_URL" default:"http://localhost:8000/api/login/oauth/access_token"`
	AuthURL      string   `mapstructure:"OAUTH2_AUTH_URL" default:"http://localhost:8000/login/oauth/authorize"`
	RedirectURL  string   `mapstructure:"OAUTH2_REDIRECT_URL" default:"http://localhost:8080/api/auth/callback"`
	UserInfoURL  string   `mapstructure:"OAUTH2_USERINFO_URL" default:"http://localhost:8000/api/get-account"`
}

type Auth struct {
	JWTPublicKey string `mapstructure:"AUTH_JWT_PUBLIC_KEY"`
}

type RPC struct {
	PubChem RPCPubChem `mapstructure:",squash"`
}

type RPCPubChem struct {
	Addr    string `mapstructure:"PUBCHEM_ADDR" default:"https://pubchem.ncbi.nlm.nih.gov"`
	Timeout int    `mapstructure:"PUBCHEM_TIMEOUT_SECONDS" default:"30"`
}

type Log struct {
	LogPath  string `mapstructure:"LOG_PATH" default:"./info.log"`
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
}

type Trace struct {
	Version         string `mapstructure:"TRACE_VERSION" default:"0.0.1"`
	TraceEndpoint   string `mapstructure:"TRACE_TRACEENDPOINT" default:""`
	MetricEndpoint  string `mapstructure:"TRACE_METRICENDPOINT" default:""`
	TraceInstanceID string `mapstructure:"TRACE_TRACEINSTANCEID" default:""`
}

type Media struct {
	// Root directory for uploaded chemical images and CSV staging files.
	Dir         string `mapstructure:"MEDIA_DIR" default:"./media"`
	DynamicPath string `mapstructure:"DYNAMIC_CONFIG_PATH" default:""`
}
