package helm

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"helm.sh/helm/v3/pkg/repo"

	"hub-install-api/pkg/hub"
)

// IndexLoader turns Helm repository index files into package snapshots.
type IndexLoader struct {
	logger *zap.Logger
}

// NewIndexLoader creates a new IndexLoader.
func NewIndexLoader(logger *zap.Logger) *IndexLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IndexLoader{logger: logger.Named("helm")}
}

// Load reads the index file at path and returns one snapshot per chart
// version found in it, charts in name order and versions newest first.
// Removed versions are skipped.
func (l *IndexLoader) Load(path string, r *hub.Repository) ([]*hub.Package, error) {
	indexFile, err := repo.LoadIndexFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load helm index %s: %w", path, err)
	}
	indexFile.SortEntries()

	names := make([]string, 0, len(indexFile.Entries))
	for name := range indexFile.Entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var pkgs []*hub.Package
	for _, name := range names {
		for _, cv := range indexFile.Entries[name] {
			if cv == nil || cv.Metadata == nil || cv.Removed {
				continue
			}
			pkgs = append(pkgs, l.snapshot(cv, r))
		}
	}
	l.logger.Info("Loaded helm index",
		zap.String("path", path),
		zap.String("repository", r.Name),
		zap.Int("charts", len(names)),
		zap.Int("versions", len(pkgs)),
	)
	return pkgs, nil
}

func (l *IndexLoader) snapshot(cv *repo.ChartVersion, r *hub.Repository) *hub.Package {
	pkg := &hub.Package{
		Name:           cv.Name,
		NormalizedName: strings.ToLower(cv.Name),
		DisplayName:    cv.Name,
		Description:    cv.Description,
		Version:        cv.Version,
		AppVersion:     cv.AppVersion,
		Deprecated:     cv.Deprecated,
		Repository:     r,
		Data: &hub.PackageData{
			APIVersion: cv.APIVersion,
			Type:       hub.ChartType(cv.Type),
		},
	}
	if !cv.Created.IsZero() {
		pkg.TS = cv.Created.Unix()
	}
	if len(cv.URLs) > 0 {
		contentURL, err := repo.ResolveReferenceURL(r.URL, cv.URLs[0])
		if err != nil {
			l.logger.Warn("Could not resolve chart content url",
				zap.String("chart", cv.Name),
				zap.String("version", cv.Version),
				zap.Error(err),
			)
			contentURL = cv.URLs[0]
		}
		pkg.ContentURL = contentURL
	}
	return pkg
}
