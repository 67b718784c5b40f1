package sheet

// Config holds configuration for the membership sheet import.
type Config struct {
	// ObjectName is the key of the sheet's CSV export in the storage bucket.
	ObjectName string `mapstructure:"object_name" default:"sheet/membership.csv"`
	// HeaderRows is the number of leading rows that are not data.
	HeaderRows int `mapstructure:"header_rows" default:"1"`
	// ReloadOnQuery re-imports the sheet (subject to the reload latency)
	// before membership queries are answered.
	ReloadOnQuery bool `mapstructure:"reload_on_query" default:"false"`
}
