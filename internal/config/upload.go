package config

type Upload struct {
	// Dir is where uploaded product images are stored and served from.
	Dir string `env:"UPLOAD_DIR" envDefault:"./uploads"`

	MaxSizeBytes int64 `env:"UPLOAD_MAX_SIZE_BYTES" envDefault:"5242880"`
}
