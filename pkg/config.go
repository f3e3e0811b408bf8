package lightmap

type Configuration struct {
	MaxEvents        int      `json:"max_events"`
	Skip             int      `json:"skip"`
	Verbosity        int      `json:"verbosity"`
	FileIn           string   `json:"file_in"`
	FilesIn          []string `json:"files_in"`
	FileOut          string   `json:"file_out"`
	ChannelThreshold float64  `json:"channel_threshold"`
	Seed             uint64   `json:"seed"`
	RunNumber        int      `json:"run_number"`
	NumWorkers       int      `json:"num_workers"`
	Parallel         bool     `json:"parallel"`
	WriteData        bool     `json:"write_data"`
	NoDB             bool     `json:"no_db"`
	Host             string   `json:"host"`
	User             string   `json:"user"`
	Passwd           string   `json:"pass"`
	DBName           string   `json:"dbname"`
	CompressionLevel int      `json:"compression_level"`
	FitType          string   `json:"fit_type"`
	Sigma            float64  `json:"sigma"`
	Standoff         float64  `json:"standoff"`
	BothPeaks        bool     `json:"both_peaks"`
	Events           int      `json:"events"`
	ModelOut         string   `json:"model_out"`
	EfficOut         string   `json:"effic_out"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
