package cfg

type Cfg struct {
	// Application configuration
	Port              string
	WatchesDir        string
	ScoringConfigPath string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Fetching configuration
	UserAgent    string
	FetchTimeout int

	// Page cache configuration
	CachePath string
	CacheTTL  int

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
