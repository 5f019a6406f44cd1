package version

const (
	// Version of langdetect
	Version = "v0.0.0"
	// Name of the project
	Name = "LangDetect"
)

// Server header returned by langdetect
var Server = Name + "/" + Version
