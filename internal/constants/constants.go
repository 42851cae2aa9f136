package constants

// File Names
const (
	EnvFileName        = ".env"
	EnvExampleFileName = ".env.example"
	ConfigFileName     = "envcheck.toml"
)

// Output formats accepted by validate
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)
