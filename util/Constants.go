package util

// set by ldflags at build time
var (
	GitCommit = ""
	BuildTime = ""
)

const (
	NOT_A_REPO_ERROR            = "not a git repository"
	PATHSPEC_ERROR              = "did not match any file(s) known to git"
	BAD_REVISION_ERROR          = "bad revision"
	CHECK_REPO_MESSAGE_RESPONSE = "Please check if the configuration directory is an initialized repository"
)
