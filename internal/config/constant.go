package config

const (
	DefaultPort       = 8300
	DefaultConfigName = "config"
	DefaultConfigType = "yaml"

	ServerPortKey = "server.port"
)
