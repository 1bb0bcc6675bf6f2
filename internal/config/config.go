package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Admin struct {
		Email        string `mapstructure:"email"`
		PasswordHash string `mapstructure:"password_hash"`
	} `mapstructure:"admin"`

	Redis struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`

	Mail struct {
		Host        string `mapstructure:"host"`
		Port        int    `mapstructure:"port"`
		Username    string `mapstructure:"username"`
		Password    string `mapstructure:"password"`
		FromName    string `mapstructure:"from_name"`
		FromAddress string `mapstructure:"from_address"`
	} `mapstructure:"mail"`

	Catalogue struct {
		Owner   string `mapstructure:"owner"`
		Repo    string `mapstructure:"repo"`
		Branch  string `mapstructure:"branch"`
		Path    string `mapstructure:"path"`
		Token   string `mapstructure:"token"`
		APIBase string `mapstructure:"api_base"`
		RawBase string `mapstructure:"raw_base"`
	} `mapstructure:"catalogue"`

	Archive struct {
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Bucket    string `mapstructure:"bucket"`
	} `mapstructure:"archive"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "stock-system")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "stock_db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.from_name", "Servitech Stock")
	v.SetDefault("catalogue.branch", "main")
	v.SetDefault("catalogue.path", "catalogue.csv")
	v.SetDefault("catalogue.api_base", "https://api.github.com")
	v.SetDefault("catalogue.raw_base", "https://raw.githubusercontent.com")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}
	if mode := os.Getenv("DB_SSLMODE"); mode != "" {
		cfg.Database.SSLMode = mode
	}

	// Override JWT secret from environment if not set
	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		if cfg.JWT.Secret == "" {
			log.Fatal("JWT_SECRET not set in environment or config file")
		}
	}

	// Admin login credentials
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		cfg.Admin.Email = email
	}
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		cfg.Admin.PasswordHash = hash
	}

	// Redis settings from REDIS_* environment variables
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Redis.Port = n
		}
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}

	// Mail settings from MAIL_* environment variables
	if host := os.Getenv("MAIL_HOST"); host != "" {
		cfg.Mail.Host = host
	}
	if port := os.Getenv("MAIL_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Mail.Port = n
		}
	}
	if user := os.Getenv("MAIL_USERNAME"); user != "" {
		cfg.Mail.Username = user
	}
	if pass := os.Getenv("MAIL_PASSWORD"); pass != "" {
		cfg.Mail.Password = pass
	}
	if from := os.Getenv("MAIL_FROM_ADDRESS"); from != "" {
		cfg.Mail.FromAddress = from
	}
	if cfg.Mail.FromAddress == "" {
		cfg.Mail.FromAddress = cfg.Mail.Username
	}

	// Catalogue store settings. The token gates every write path; without it
	// the sync engine can only read via the public raw URL.
	if owner := os.Getenv("CATALOGUE_OWNER"); owner != "" {
		cfg.Catalogue.Owner = owner
	}
	if repo := os.Getenv("CATALOGUE_REPO"); repo != "" {
		cfg.Catalogue.Repo = repo
	}
	if branch := os.Getenv("CATALOGUE_BRANCH"); branch != "" {
		cfg.Catalogue.Branch = branch
	}
	if path := os.Getenv("CATALOGUE_PATH"); path != "" {
		cfg.Catalogue.Path = path
	}
	if token := os.Getenv("CATALOGUE_TOKEN"); token != "" {
		cfg.Catalogue.Token = token
	} else if token := os.Getenv("GITHUB_TOKEN"); token != "" && cfg.Catalogue.Token == "" {
		cfg.Catalogue.Token = token
	}

	// Snapshot archive (S3-compatible) settings
	if endpoint := os.Getenv("ARCHIVE_ENDPOINT"); endpoint != "" {
		cfg.Archive.Endpoint = endpoint
	}
	if region := os.Getenv("ARCHIVE_REGION"); region != "" {
		cfg.Archive.Region = region
	}
	if key := os.Getenv("ARCHIVE_ACCESS_KEY"); key != "" {
		cfg.Archive.AccessKey = key
	}
	if secret := os.Getenv("ARCHIVE_SECRET_KEY"); secret != "" {
		cfg.Archive.SecretKey = secret
	}
	if bucket := os.Getenv("ARCHIVE_BUCKET"); bucket != "" {
		cfg.Archive.Bucket = bucket
	}

	return &cfg
}
