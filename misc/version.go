// Package misc holds build time information.
package misc

// Set with -ldflags "-X docx2html/misc.version=... -X docx2html/misc.gitHash=..."
var (
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return "docx2html"
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
