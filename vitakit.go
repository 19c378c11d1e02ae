package vitakit

const (
	// AppName is used for cache directories and user agent strings.
	AppName = "vitakit"
	Version = "0.1.0"
	// UserAgent is sent with every API request, as the polite pools of
	// crossref and NCBI suggest.
	UserAgent = "vitakit/" + Version + " (https://github.com/miku/vitakit)"
)
