package appcatalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"hub-install-api/pkg/helm"
	"hub-install-api/pkg/hub"
	"hub-install-api/pkg/installmethods"
	"hub-install-api/pkg/versions"
)

// Catalog lookup errors.
var (
	ErrPackageNotFound    = errors.New("package not found")
	ErrVersionNotFound    = errors.New("version not found")
	ErrDuplicateEntry     = errors.New("duplicate catalog entry")
	ErrInvalidIndexSource = errors.New("helm index configured on a non helm repository")
)

type packageKey struct {
	repository string
	name       string
}

type packageEntry struct {
	snapshots map[string]*hub.Package // by version
	versions  []hub.Version           // newest first once the catalog is built
}

// Service provides read access to the package catalog.
type Service struct {
	entries map[packageKey]*packageEntry
	keys    []packageKey
	logger  *zap.Logger
}

// NewService creates a new catalog service from the catalog file at
// catalogPath, importing any Helm index files it references.
func NewService(catalogPath string, indexLoader *helm.IndexLoader, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	catalog, err := LoadCatalogFile(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("could not load catalog: %w", err)
	}

	s := &Service{
		entries: make(map[packageKey]*packageEntry),
		logger:  logger.Named("appcatalog"),
	}
	if err := s.build(catalog, filepath.Dir(catalogPath), indexLoader); err != nil {
		return nil, err
	}
	s.logger.Info("Loaded catalog",
		zap.String("path", catalogPath),
		zap.Int("repositories", len(catalog.Repositories)),
		zap.Int("packages", len(s.keys)),
	)
	return s, nil
}

func (s *Service) build(catalog *CatalogFile, baseDir string, indexLoader *helm.IndexLoader) error {
	seenRepos := make(map[string]bool, len(catalog.Repositories))
	for i := range catalog.Repositories {
		rc := &catalog.Repositories[i]
		if seenRepos[rc.Name] {
			return fmt.Errorf("%w: repository %s", ErrDuplicateEntry, rc.Name)
		}
		seenRepos[rc.Name] = true

		r, err := rc.repository()
		if err != nil {
			return err
		}

		for j := range rc.Packages {
			pc := &rc.Packages[j]
			for k := range pc.Versions {
				vc := &pc.Versions[k]
				if err := s.add(pc.snapshot(vc, r), vc.record()); err != nil {
					return err
				}
			}
		}

		if rc.HelmIndex == "" {
			continue
		}
		if r.Kind != hub.Helm {
			return fmt.Errorf("%w: repository %s is %s", ErrInvalidIndexSource, r.Name, r.Kind)
		}
		if indexLoader == nil {
			indexLoader = helm.NewIndexLoader(s.logger)
		}
		indexPath := rc.HelmIndex
		if !filepath.IsAbs(indexPath) {
			indexPath = filepath.Join(baseDir, indexPath)
		}
		pkgs, err := indexLoader.Load(indexPath, r)
		if err != nil {
			return fmt.Errorf("repository %s: %w", r.Name, err)
		}
		for _, pkg := range pkgs {
			if err := s.add(pkg, hub.Version{Version: pkg.Version, TS: pkg.TS}); err != nil {
				return err
			}
		}
	}

	for key, entry := range s.entries {
		entry.versions = versions.SortNewestFirst(entry.versions)
		s.keys = append(s.keys, key)
	}
	sort.Slice(s.keys, func(i, j int) bool {
		if s.keys[i].repository != s.keys[j].repository {
			return s.keys[i].repository < s.keys[j].repository
		}
		return s.keys[i].name < s.keys[j].name
	})
	return nil
}

func (s *Service) add(pkg *hub.Package, v hub.Version) error {
	key := packageKey{repository: pkg.Repository.Name, name: pkg.Name}
	entry, ok := s.entries[key]
	if !ok {
		entry = &packageEntry{snapshots: make(map[string]*hub.Package)}
		s.entries[key] = entry
	}
	if _, exists := entry.snapshots[pkg.Version]; exists {
		return fmt.Errorf("%w: %s/%s version %s", ErrDuplicateEntry, key.repository, key.name, pkg.Version)
	}
	pkg.PackageID = key.repository + "/" + key.name
	entry.snapshots[pkg.Version] = pkg
	entry.versions = append(entry.versions, v)
	return nil
}

// GetAvailablePackages returns the latest snapshot of every package, ordered
// by repository and name.
func (s *Service) GetAvailablePackages() []*hub.Package {
	pkgs := make([]*hub.Package, 0, len(s.keys))
	for _, key := range s.keys {
		entry := s.entries[key]
		pkgs = append(pkgs, entry.view(entry.latest()))
	}
	return pkgs
}

// GetPackage returns a package at the requested version. An empty version
// selects the latest one.
func (s *Service) GetPackage(repository, name, version string) (*hub.Package, error) {
	entry, ok := s.entries[packageKey{repository: repository, name: name}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrPackageNotFound, repository, name)
	}
	if version == "" {
		version = entry.latest()
	}
	if _, ok := entry.snapshots[version]; !ok {
		return nil, fmt.Errorf("%w: %s/%s version %s", ErrVersionNotFound, repository, name, version)
	}
	return entry.view(version), nil
}

// InstallContext builds the input needed to resolve the install methods of a
// package version. When no channel is given the package default channel is
// used.
func (s *Service) InstallContext(repository, name, version, channel string) (installmethods.PackageInstallContext, error) {
	pkg, err := s.GetPackage(repository, name, version)
	if err != nil {
		return installmethods.PackageInstallContext{}, err
	}
	if channel == "" {
		channel = pkg.DefaultChannel
	}
	return installmethods.PackageInstallContext{
		Package:        pkg,
		SortedVersions: pkg.AvailableVersions,
		ActiveChannel:  channel,
	}, nil
}

// latest returns the newest version of the package.
func (e *packageEntry) latest() string {
	v, _ := versions.Latest(e.versions)
	return v.Version
}

// view returns a copy of the snapshot for version carrying the package
// versions, newest first.
func (e *packageEntry) view(version string) *hub.Package {
	pkg := *e.snapshots[version]
	pkg.AvailableVersions = append([]hub.Version(nil), e.versions...)
	return &pkg
}
