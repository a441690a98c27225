package config

import "time"

// PreSignupConfig configures the pre sign-up account linker.
type PreSignupConfig struct {
	// TriggerSource is the trigger tag that enters the linking pipeline.
	TriggerSource string
	// SubjectAttribute names the source identity attribute in link calls.
	SubjectAttribute string
	// NativeProvider is the pool's own provider name for link destinations.
	NativeProvider string
	// ProviderAliases maps a username prefix to the provider name registered
	// on the pool, e.g. "google" -> "Google".
	ProviderAliases map[string]string
	// BackendTimeout bounds each backend call. Zero inherits the caller's deadline.
	BackendTimeout time.Duration
	// NotifyOnLink emails the account owner after a successful link.
	NotifyOnLink bool
}

func loadPreSignupConfig() PreSignupConfig {
	return PreSignupConfig{
		TriggerSource:    getEnv("PRESIGNUP_TRIGGER_SOURCE", "PreSignUp_ExternalProvider"),
		SubjectAttribute: getEnv("PRESIGNUP_SUBJECT_ATTRIBUTE", "Cognito_Subject"),
		NativeProvider:   getEnv("PRESIGNUP_NATIVE_PROVIDER", "Cognito"),
		ProviderAliases:  getEnvStringMap("PRESIGNUP_PROVIDER_ALIASES"),
		BackendTimeout:   getEnvDuration("PRESIGNUP_BACKEND_TIMEOUT", 0),
		NotifyOnLink:     getEnvBool("PRESIGNUP_NOTIFY_ON_LINK", false),
	}
}
