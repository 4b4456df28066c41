package appcatalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hub-install-api/pkg/hub"
)

// CatalogFile is the on-disk catalog of repositories and their packages.
type CatalogFile struct {
	Repositories []RepositoryConfig `yaml:"repositories"`
}

// RepositoryConfig defines a repository and the packages published in it.
type RepositoryConfig struct {
	Name              string          `yaml:"name"`
	DisplayName       string          `yaml:"display_name,omitempty"`
	Kind              string          `yaml:"kind"` // Kind name, e.g. "helm" or "olm"
	URL               string          `yaml:"url"`
	Private           bool            `yaml:"private,omitempty"`
	VerifiedPublisher bool            `yaml:"verified_publisher,omitempty"`
	Official          bool            `yaml:"official,omitempty"`
	HelmIndex         string          `yaml:"helm_index,omitempty"` // Optional Helm index.yaml to import (helm kind only)
	Packages          []PackageConfig `yaml:"packages,omitempty"`
}

// PackageConfig defines a package and its versions.
type PackageConfig struct {
	Name           string          `yaml:"name"`
	NormalizedName string          `yaml:"normalized_name,omitempty"`
	DisplayName    string          `yaml:"display_name,omitempty"`
	Description    string          `yaml:"description,omitempty"`
	DefaultChannel string          `yaml:"default_channel,omitempty"`
	Channels       []hub.Channel   `yaml:"channels,omitempty"`
	RelativePath   string          `yaml:"relative_path,omitempty"`
	Versions       []VersionConfig `yaml:"versions"`
}

// VersionConfig holds the version specific details of a package.
type VersionConfig struct {
	Version                 string               `yaml:"version"`
	TS                      int64                `yaml:"ts,omitempty"`
	AppVersion              string               `yaml:"app_version,omitempty"`
	Prerelease              bool                 `yaml:"prerelease,omitempty"`
	ContainsSecurityUpdates bool                 `yaml:"contains_security_updates,omitempty"`
	Deprecated              bool                 `yaml:"deprecated,omitempty"`
	ContentURL              string               `yaml:"content_url,omitempty"`
	Install                 string               `yaml:"install,omitempty"` // Publisher install instructions (markdown)
	Data                    *hub.PackageData     `yaml:"data,omitempty"`
	ContainersImages        []hub.ContainerImage `yaml:"containers_images,omitempty"`
}

// LoadCatalogFile loads the catalog from a YAML file.
func LoadCatalogFile(filePath string) (*CatalogFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", filePath, err)
	}

	var catalog CatalogFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog from %s: %w", filePath, err)
	}
	return &catalog, nil
}

func (rc *RepositoryConfig) repository() (*hub.Repository, error) {
	kind, err := hub.GetKindFromName(rc.Kind)
	if err != nil {
		return nil, fmt.Errorf("repository %s: %w", rc.Name, err)
	}
	return &hub.Repository{
		RepositoryID:      rc.Name,
		Name:              rc.Name,
		DisplayName:       rc.DisplayName,
		URL:               rc.URL,
		Private:           rc.Private,
		Kind:              kind,
		VerifiedPublisher: rc.VerifiedPublisher,
		Official:          rc.Official,
	}, nil
}

func (pc *PackageConfig) snapshot(vc *VersionConfig, r *hub.Repository) *hub.Package {
	normalizedName := pc.NormalizedName
	if normalizedName == "" {
		normalizedName = pc.Name
	}
	return &hub.Package{
		Name:             pc.Name,
		NormalizedName:   normalizedName,
		DisplayName:      pc.DisplayName,
		Description:      pc.Description,
		Version:          vc.Version,
		AppVersion:       vc.AppVersion,
		Deprecated:       vc.Deprecated,
		TS:               vc.TS,
		ContentURL:       vc.ContentURL,
		Install:          vc.Install,
		Data:             vc.Data,
		DefaultChannel:   pc.DefaultChannel,
		Channels:         pc.Channels,
		ContainersImages: vc.ContainersImages,
		RelativePath:     pc.RelativePath,
		Repository:       r,
	}
}

func (vc *VersionConfig) record() hub.Version {
	return hub.Version{
		Version:                 vc.Version,
		TS:                      vc.TS,
		ContainsSecurityUpdates: vc.ContainsSecurityUpdates,
		Prerelease:              vc.Prerelease,
	}
}
