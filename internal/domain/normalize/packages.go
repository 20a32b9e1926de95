package normalize

import (
	"encoding/json"

	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/entity"
)

const (
	MsgNoPackages      = "No packages available"
	MsgPackagesFetched = "Packages fetched successfully"
)

// ResolvePackages parses the catalog body, which the upstream returns either
// as a bare array or wrapped in {"packages": [...]}.
func ResolvePackages(raw []byte) []entity.Package {
	if len(raw) == 0 || string(raw) == "null" {
		return []entity.Package{}
	}

	var bare []entity.Package
	if err := json.Unmarshal(raw, &bare); err == nil {
		if bare == nil {
			return []entity.Package{}
		}
		return bare
	}

	var wrapped struct {
		Packages []entity.Package `json:"packages"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Packages != nil {
		return wrapped.Packages
	}
	return []entity.Package{}
}

// PackagesMessage returns the human-readable outcome for a catalog fetch.
func PackagesMessage(packages []entity.Package) string {
	if len(packages) == 0 {
		return MsgNoPackages
	}
	return MsgPackagesFetched
}
