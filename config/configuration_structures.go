package config

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Issuer          string `yaml:"issuer"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`

	// секреты приходят только из окружения, не из yaml
	AccessSecret  string `yaml:"-"`
	RefreshSecret string `yaml:"-"`
}

type SessionConfig struct {
	CookieName string `yaml:"cookie_name"`
	MaxAge     string `yaml:"max_age"`

	Secret string `yaml:"-"`
}

type FrontendConfig struct {
	Addr           string `yaml:"addr"`
	APIURL         string `yaml:"api_url"`
	RequestTimeout string `yaml:"request_timeout"`
}

type TTL struct {
	JokeCache int `yaml:"joke_cache"`
}
