package config

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	ClientURL   string `yaml:"client_url"`

	// StripePublishableKey is the non-sensitive browser key. It is served
	// verbatim to the UI and must never be the secret key.
	StripePublishableKey string `yaml:"stripe_publishable_key"`

	// StripeSecretName and StripeWebhookSecretName are parameter names passed
	// through the secret resolver, not the secrets themselves.
	StripeSecretName        string    `yaml:"stripe_secret_name"`
	StripeWebhookSecretName string    `yaml:"stripe_webhook_secret_name"`
	AWS                     AWSConfig `yaml:"aws"`
}

// AWSConfig configures access to the SSM parameter store.
type AWSConfig struct {
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	Output      string `yaml:"output"`
	FilePath    string `yaml:"file_path"`
	Development bool   `yaml:"development"`
}

type JWTConfig struct {
	// SecretName is resolved through the secret resolver at startup.
	SecretName string `yaml:"secret_name"`
}
