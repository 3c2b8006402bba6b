package export

// Level classifies a Notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// User-facing notice texts.
const (
	MessageCopied          = "Signature HTML copied to clipboard"
	MessageCopyFailed      = "Copy failed. Please download the HTML and copy manually."
	MessageRenderedCopied  = "Rendered signature copied"
	MessageRenderedFailed  = "Copy failed."
	MessagePreviewNotFound = "Preview not found"
	MessageDownloaded      = "Signature saved"
	MessageDownloadFailed  = "Download failed."
	MessagePNGExported     = "PNG exported"
	MessagePNGFailed       = "PNG export failed. Try copying HTML instead."
)

// Notice is the single outcome message of an export action. Err carries the
// underlying failure for logging and is never shown as the message.
type Notice struct {
	Level   Level
	Message string
	Path    string
	Err     error
}

// OK reports whether the action succeeded.
func (n Notice) OK() bool {
	return n.Level == LevelSuccess
}

func success(message string) Notice {
	return Notice{Level: LevelSuccess, Message: message}
}

func failure(message string, err error) Notice {
	return Notice{Level: LevelError, Message: message, Err: err}
}
