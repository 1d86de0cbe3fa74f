package config

const (
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultSQLite3Binary = "sqlite3"
	defaultSampleRate    = uint32(44100)
	defaultSampleFormat  = "float"
)
