package constants

import "os"

const (
	// DefaultFilePermissions sets the permissions for result files: (rw-------).
	// Results carry authentication payloads, so only the owner may read them.
	DefaultFilePermissions os.FileMode = 0o600

	// DefaultFolderPermissions sets the permissions for folders created for result files: (rwxr-xr-x).
	DefaultFolderPermissions os.FileMode = 0o755
)
