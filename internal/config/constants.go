package config

// SuiteFileExt is the default conformance suite file extension.
const SuiteFileExt = ".yaml"

// SuiteFileExtensions are all recognized conformance suite extensions.
var SuiteFileExtensions = []string{".yaml", ".yml"}

// Built-in type names recognized by annotation lowering.
const (
	SeqTypeName     = "Seq"
	UnknownTypeName = "Unknown"
	NeverTypeName   = "Never"
)

// Environment variables consulted by the CLI.
const (
	EnvNoColor = "NO_COLOR"
	EnvTerm    = "TERM"
)
