package model

const (
	FileTypeAvatar = "avatar"
)

// File describes an upload after it has been written to storage.
type File struct {
	Type         string
	Filename     string // Generated name, never the client's
	OriginalName string
	MimeType     string
	Size         int64
	StoragePath  string
	URL          string // What gets persisted as the photo path
}
