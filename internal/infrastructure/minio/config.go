package minio

type ClientConfig struct {
	AccessKey string
	SecretKey string
	Endpoint  string `yaml:"endpoint"`
	Secure    bool   `yaml:"secure"`
}

type PresignerConfig struct {
	Bucket string `yaml:"bucket"`
	Expiry int64  `yaml:"expiry_in_sec"`
}
