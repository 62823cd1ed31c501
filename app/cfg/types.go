package cfg

type Cfg struct {
	// Storage configuration
	DBPath     string
	ConfigPath string
	RedisAddr  string

	// Application configuration
	Port              string
	TranslateEndpoint string
	WorkerCount       int
	SchedulerInterval int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
