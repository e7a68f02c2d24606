package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Cron     CronConfig
	Dispatch DispatchConfig
	Planner  PlannerConfig
	Provider ProviderConfig
	Audit    AuditConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Cron-Secret"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type CronConfig struct {
	Secret string `envconfig:"CRON_SECRET" required:"true"`
}

type DispatchConfig struct {
	BatchSize       int           `envconfig:"DISPATCH_BATCH_SIZE" default:"50"`
	MaxBatchSize    int           `envconfig:"DISPATCH_MAX_BATCH_SIZE" default:"500"`
	RetryMax        int           `envconfig:"DISPATCH_RETRY_MAX" default:"5"`
	Concurrency     int           `envconfig:"DISPATCH_CONCURRENCY" default:"8"`
	SendTimeout     time.Duration `envconfig:"DISPATCH_SEND_TIMEOUT" default:"15s"`
	WindowSkipDelay time.Duration `envconfig:"DISPATCH_WINDOW_SKIP_DELAY" default:"10m"`
	BackoffBase     time.Duration `envconfig:"DISPATCH_BACKOFF_BASE" default:"30s"`
	BackoffMax      time.Duration `envconfig:"DISPATCH_BACKOFF_MAX" default:"6h"`
	SendingLease    time.Duration `envconfig:"DISPATCH_SENDING_LEASE" default:"15m"`
}

type PlannerConfig struct {
	DefaultTimeZone string `envconfig:"PLANNER_DEFAULT_TIMEZONE" default:"Europe/Paris"`
	SampleSize      int    `envconfig:"PLANNER_SAMPLE_SIZE" default:"10"`
	InsertBatch     int    `envconfig:"PLANNER_INSERT_BATCH" default:"500"`
}

type ProviderConfig struct {
	// AppBaseURL is the public origin used to build unsubscribe links.
	AppBaseURL string `envconfig:"APP_BASE_URL"`

	Email   string `envconfig:"EMAIL_PROVIDER" default:"console"`
	SMS     string `envconfig:"SMS_PROVIDER" default:"console"`
	Chat    string `envconfig:"CHAT_PROVIDER" default:"console"`
	SES     SESConfig
	Aliyun  AliyunSMSConfig
	Tencent TencentSMSConfig
	Twilio  TwilioConfig
}

type SESConfig struct {
	Region    string `envconfig:"SES_REGION" default:"eu-west-1"`
	FromEmail string `envconfig:"SES_FROM_EMAIL"`
	Subject   string `envconfig:"SES_SUBJECT" default:"A quick follow-up"`
}

type AliyunSMSConfig struct {
	RegionID        string `envconfig:"ALIYUN_SMS_REGION_ID" default:"cn-hangzhou"`
	AccessKeyID     string `envconfig:"ALIYUN_SMS_ACCESS_KEY_ID"`
	AccessKeySecret string `envconfig:"ALIYUN_SMS_ACCESS_KEY_SECRET"`
	SignName        string `envconfig:"ALIYUN_SMS_SIGN_NAME"`
	TemplateCode    string `envconfig:"ALIYUN_SMS_TEMPLATE_CODE"`
}

type TencentSMSConfig struct {
	RegionID   string `envconfig:"TENCENT_SMS_REGION_ID" default:"ap-guangzhou"`
	SecretID   string `envconfig:"TENCENT_SMS_SECRET_ID"`
	SecretKey  string `envconfig:"TENCENT_SMS_SECRET_KEY"`
	AppID      string `envconfig:"TENCENT_SMS_APP_ID"`
	SignName   string `envconfig:"TENCENT_SMS_SIGN_NAME"`
	TemplateID string `envconfig:"TENCENT_SMS_TEMPLATE_ID"`
}

type TwilioConfig struct {
	AccountSID string        `envconfig:"TWILIO_ACCOUNT_SID"`
	AuthToken  string        `envconfig:"TWILIO_AUTH_TOKEN"`
	ChatFrom   string        `envconfig:"TWILIO_WHATSAPP_FROM"`
	Timeout    time.Duration `envconfig:"TWILIO_HTTP_TIMEOUT" default:"10s"`
}

type AuditConfig struct {
	Brokers []string `envconfig:"AUDIT_KAFKA_BROKERS"`
	Topic   string   `envconfig:"AUDIT_KAFKA_TOPIC" default:"reminder.dispatch-logs"`

	BatchTimeout time.Duration `envconfig:"AUDIT_KAFKA_BATCH_TIMEOUT" default:"10ms"`
	QueueSize    int           `envconfig:"AUDIT_QUEUE_SIZE" default:"1024"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Store.Driver == StoreDriverPostgres && (cfg.DB.User == "" || cfg.DB.DBName == "") {
		return Config{}, fmt.Errorf("DB_USER and DB_NAME are required when STORE_DRIVER=%s", StoreDriverPostgres)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Driver: StoreDriverMemory,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-jwt-secret",
			Duration: "1h",
		},
		Cron: CronConfig{
			Secret: "test-cron-secret",
		},
		Dispatch: DispatchConfig{
			BatchSize:       50,
			MaxBatchSize:    500,
			RetryMax:        5,
			Concurrency:     4,
			SendTimeout:     2 * time.Second,
			WindowSkipDelay: 10 * time.Minute,
			BackoffBase:     30 * time.Second,
			BackoffMax:      6 * time.Hour,
			SendingLease:    15 * time.Minute,
		},
		Planner: PlannerConfig{
			DefaultTimeZone: "Europe/Paris",
			SampleSize:      10,
			InsertBatch:     500,
		},
		Provider: ProviderConfig{
			AppBaseURL: "http://localhost:8080",
			Email:      "console",
			SMS:        "console",
			Chat:       "console",
		},
	}
}
