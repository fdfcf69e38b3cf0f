package assets

import _ "embed"

// DefaultAvatar is served at /uploads/default-avatar.png when the upload
// directory has no file of that name.
//
//go:embed default-avatar.png
var DefaultAvatar []byte
