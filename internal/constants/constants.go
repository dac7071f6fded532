package constants

// Tool name and related constants.
const (
	// ToolName is the name of this tool
	ToolName = "sicilian"

	// ConfigFileName is the default config file name
	ConfigFileName = ".sicilian.toml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "SICILIAN"
)

// Output format constants.
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
	OutputFormatCSV  = "csv"
)

// Nonce mode constants.
const (
	NonceModeRandom  = "random"
	NonceModeDerived = "derived"
)
