package usecase

type UploaderConfig struct {
	MaxUploadBytes    int64    `yaml:"max_upload_bytes"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
}
