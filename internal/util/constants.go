package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// Upload MIME constants
const (
	MimeImage       = "image/"
	MimeAudio       = "audio/"
	MimePDF         = "application/pdf"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedMaterialExtensions = []string{".pdf", ".doc", ".docx", ".ppt", ".pptx", ".mp3", ".ogg", ".png", ".jpg", ".jpeg", ".webp"}
)
