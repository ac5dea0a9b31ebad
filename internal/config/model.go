package config

type (
	Config struct {
		Server Server `mapstructure:"server"`
		Log    Log    `mapstructure:"log"`
		Redis  Redis  `mapstructure:"redis"`
		Auth   Auth   `mapstructure:"auth"`
		Extra  Extra  `mapstructure:"extra"`
	}

	Server struct {
		Port int `mapstructure:"port"`
	}

	Log struct {
		Level      string `mapstructure:"level"`
		File       string `mapstructure:"file"`
		MaxSize    int    `mapstructure:"max_size"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAge     int    `mapstructure:"max_age"`
		Compress   bool   `mapstructure:"compress"`
	}

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	}

	Auth struct {
		// bearer token publishers must present when pushing releases
		PublisherToken string `mapstructure:"publisher_token"`
	}

	Extra struct {
		// prefix applied to releases published with a relative
		// download path
		DownloadPrefix string `mapstructure:"download_prefix"`
	}
)
