package detour

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// DecodeHeader reads the fixed-size MeshHeader prefix of a serialized tile,
// without touching the variable-length sections that follow. It exists for
// tooling that inspects a tile (an info command, a test assertion) without
// needing the full decode-and-attach machinery a live NavMesh would require.
func DecodeHeader(data []byte) (*MeshHeader, error) {
	var hdr MeshHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("detour: reading tile header: %w", err)
	}
	if hdr.Magic != navMeshMagic {
		return nil, fmt.Errorf("detour: wrong magic number: %#x", hdr.Magic)
	}
	if hdr.Version != navMeshVersion {
		return nil, fmt.Errorf("detour: wrong version: %d", hdr.Version)
	}
	return &hdr, nil
}
