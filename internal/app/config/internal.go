package config

type InternalConfig struct {
	App   App         `mapstructure:"app"`
	JWT   AppJWT      `mapstructure:"jwt"`
	Minio AppMinio    `mapstructure:"minio"`
	Queue AppRabbitMQ `mapstructure:"rabbitmq"`
}

type App struct {
	Env                       string `mapstructure:"env"`
	Port                      string `mapstructure:"port"`
	Version                   string `mapstructure:"version"`
	Address                   string `mapstructure:"address"`
	Timezone                  string `mapstructure:"timezone"`
	EndpointPrefix            string `mapstructure:"endpoint_prefix"`
	MaxRequests               int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds  int    `mapstructure:"shutdown_timeout_in_seconds"`
	MaxTimeRequestsPerSeconds int    `mapstructure:"max_time_requests_per_seconds"`
	// ReferralCodeRatePerMinute bounds how many referral codes a single
	// instance may mint per minute while probing for an unused one.
	ReferralCodeRatePerMinute int `mapstructure:"referral_code_rate_per_minute"`
	ReferralCodeMaxAttempts   int `mapstructure:"referral_code_max_attempts"`
	// CompactionWorkerCronSpec defines the cron expression for the stale
	// compaction refresh worker (e.g., "@hourly").
	CompactionWorkerCronSpec       string `mapstructure:"compaction_worker_cron_spec"`
	CompactionStaleAfterInMinutes  int    `mapstructure:"compaction_stale_after_in_minutes"`
	ExportPresignedUrlExpiryInHour int    `mapstructure:"export_presigned_url_expiry_in_hour"`
}

type AppJWT struct {
	Secret        string `mapstructure:"secret"`
	ExpTimeInHour int    `mapstructure:"exp_time_in_hour"`
}

type AppMinio struct {
	BucketName string `mapstructure:"bucket_name"`
}

type AppRabbitMQ struct {
	RecomputeQueue string `mapstructure:"recompute_queue"`
}
