package config

import "time"

// Config is the top-level govlens configuration, corresponding to .govlens.yml.
type Config struct {
	APIBaseURL      string        `yaml:"api_base_url" koanf:"api_base_url"`
	Language        string        `yaml:"language" koanf:"language"`
	RequestTimeout  time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
	PDFProbeTimeout time.Duration `yaml:"pdf_probe_timeout" koanf:"pdf_probe_timeout"`
	DataDir         string        `yaml:"data_dir" koanf:"data_dir"`
	Demo            bool          `yaml:"demo" koanf:"demo"`
	DemoPort        int           `yaml:"demo_port" koanf:"demo_port"`
}
