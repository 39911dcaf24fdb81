package pmtconfig

type Configuration struct {
	MaxEvents        int    `json:"max_events"`
	Skip             int    `json:"skip"`
	NChannels        int    `json:"n_channels"`
	Verbosity        int    `json:"verbosity"`
	FileIn           string `json:"file_in"`
	FileOut          string `json:"file_out"`
	WriteData        bool   `json:"write_data"`
	CompressionLevel int    `json:"compression_level"`
	NoDB             bool   `json:"no_db"`
	RunNumber        int    `json:"run_number"`
	Host             string `json:"host"`
	User             string `json:"user"`
	Passwd           string `json:"pass"`
	DBName           string `json:"dbname"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
