package cfg

type Cfg struct {
	// Page snapshot configuration
	PagePath   string
	PageHost   string
	SiteHost   string
	OutputPath string

	// List sources
	AllowList string
	BlockList string

	// Application configuration
	ProfilePath        string
	DBPath             string
	Port               string
	APIAccessKey       string
	DebounceMs         int
	ReclassifyOnReload bool
	ListTimeout        int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
