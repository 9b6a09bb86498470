package manifest

import (
	"fmt"
	"strings"
)

const (
	// KeyName is the part name under which the encryption key is stored.
	KeyName = "encryption_key.key"
	// ManifestName is the part name under which the serialized manifest is stored.
	ManifestName = "manifest.json"
	// DefaultFilename is returned by Filename when the manifest carries no original name.
	DefaultFilename = "restored_file"
)

// ChunkName returns the part name for the chunk at the 0-based index.
func ChunkName(index int) string {
	return fmt.Sprintf("chunk_%d.bin", index+1)
}

// IsReserved reports whether name is used for the key or the manifest.
func IsReserved(name string) bool {
	return name == KeyName || name == ManifestName
}

// validChunkName rejects names that would collide with reserved parts
// or escape the directory they are stored in.
func validChunkName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("invalid chunk name %q", name)
	case IsReserved(name):
		return fmt.Errorf("chunk name %q is reserved", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("chunk name %q contains a path separator", name)
	}

	return nil
}
