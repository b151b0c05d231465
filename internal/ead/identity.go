package ead

import (
	"fmt"

	"github.com/google/uuid"
)

// NamespaceNodeIdentity is the UUID v5 namespace for component, item and
// archive identifiers. The same path always yields the same ID, so a
// republished collection keeps its anchors.
var NamespaceNodeIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("microarchive/node-identity/v1"))

const (
	kindArchive   = "archive"
	kindComponent = "component"
	kindItem      = "item"
)

// nodeID returns an xml:id-safe identifier for a node of the given kind.
// ordinal > 1 disambiguates repeated item identifiers.
func nodeID(kind, path string, ordinal int) string {
	id := "id-" + uuid.NewSHA1(NamespaceNodeIdentity, []byte(kind+":"+path)).String()
	if ordinal > 1 {
		id = fmt.Sprintf("%s-%d", id, ordinal)
	}
	return id
}
