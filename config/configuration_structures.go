package config

type DatabaseConfig struct {
	DSN            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	// PublicBaseURL : базовый адрес, по которому загруженные картинки доступны снаружи
	PublicBaseURL string `yaml:"public_base_url"`
	Local         bool   `yaml:"local"`
}

type JWTConfig struct {
	// Секреты для access и refresh токенов разные:
	// утечка одного не позволяет подделывать токены другого типа
	AccessSecret    string `yaml:"access_secret"`
	RefreshSecret   string `yaml:"refresh_secret"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`
	Issuer          string `yaml:"issuer"`
}

type TTL struct {
	// Cache : время жизни записей каталога в Redis, в секундах
	Cache int `yaml:"cache"`
}
