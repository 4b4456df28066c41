package installmethods

import (
	"errors"

	"hub-install-api/pkg/hub"
)

// Halting conditions. A guard returning one of these stops the resolution
// before any method is emitted.
var (
	ErrVersionNotCurrent  = errors.New("version not current")
	ErrNotInstallableType = errors.New("not installable type")
)

var haltMessages = map[error]string{
	ErrVersionNotCurrent:  "Only the current version can be installed",
	ErrNotInstallableType: "A library chart is not installable",
}

// channelTrackedKinds are the repository kinds whose install target follows a
// channel rather than an immutable release, so only the newest version can be
// offered.
var channelTrackedKinds = map[hub.RepositoryKind]bool{
	hub.OLM: true,
}

// guard inspects the input and returns a halting error, or nil to let the
// resolution continue.
type guard func(pkg *hub.Package, sortedVersions []hub.Version) error

// guards run in order, the first trip wins.
var guards = []guard{
	versionCurrencyGuard,
	installabilityGuard,
}

func versionCurrencyGuard(pkg *hub.Package, sortedVersions []hub.Version) error {
	if !channelTrackedKinds[pkg.Repository.Kind] || len(sortedVersions) == 0 {
		return nil
	}
	if pkg.Version != sortedVersions[0].Version {
		return ErrVersionNotCurrent
	}
	return nil
}

func installabilityGuard(pkg *hub.Package, _ []hub.Version) error {
	if pkg.IsLibrary() {
		return ErrNotInstallableType
	}
	return nil
}

func runGuards(pkg *hub.Package, sortedVersions []hub.Version) error {
	for _, g := range guards {
		if err := g(pkg, sortedVersions); err != nil {
			return err
		}
	}
	return nil
}
