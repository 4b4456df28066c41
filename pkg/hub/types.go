package hub

import (
	"helm.sh/helm/v3/pkg/registry"
)

// ChartType is the content type a chart declares in its metadata.
type ChartType string

const (
	// ChartTypeApplication marks a chart that can be installed directly.
	ChartTypeApplication ChartType = "application"
	// ChartTypeLibrary marks a chart that only provides building blocks to other charts.
	ChartTypeLibrary ChartType = "library"
)

// Repository represents a packages repository.
type Repository struct {
	RepositoryID      string         `json:"repository_id,omitempty" yaml:"repository_id,omitempty"`
	Name              string         `json:"name" yaml:"name"`
	DisplayName       string         `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	URL               string         `json:"url" yaml:"url"`
	Private           bool           `json:"private" yaml:"private"`
	Kind              RepositoryKind `json:"kind" yaml:"kind"`
	VerifiedPublisher bool           `json:"verified_publisher" yaml:"verified_publisher"`
	Official          bool           `json:"official" yaml:"official"`
	UserAlias         string         `json:"user_alias,omitempty" yaml:"user_alias,omitempty"`
	OrganizationName  string         `json:"organization_name,omitempty" yaml:"organization_name,omitempty"`
}

// IsOCI reports whether the repository is addressed through an OCI registry.
func (r *Repository) IsOCI() bool {
	return r != nil && registry.IsOCI(r.URL)
}

// Version represents one of the versions available for a package.
type Version struct {
	Version                 string `json:"version" yaml:"version"`
	TS                      int64  `json:"ts" yaml:"ts"`
	ContainsSecurityUpdates bool   `json:"contains_security_updates" yaml:"contains_security_updates"`
	Prerelease              bool   `json:"prerelease" yaml:"prerelease"`
}

// Channel represents an operator channel.
type Channel struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// ContainerImage represents a container image referenced by a package.
type ContainerImage struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Image       string `json:"image" yaml:"image"`
	Whitelisted bool   `json:"whitelisted,omitempty" yaml:"whitelisted,omitempty"`
}

// PackageData holds kind specific package details.
type PackageData struct {
	IsGlobalOperator bool      `json:"is_global_operator,omitempty" yaml:"is_global_operator,omitempty"` // olm
	APIVersion       string    `json:"api_version,omitempty" yaml:"api_version,omitempty"`               // helm
	Type             ChartType `json:"type,omitempty" yaml:"type,omitempty"`                             // helm

	Examples []GatekeeperExample `json:"examples,omitempty" yaml:"examples,omitempty"` // gatekeeper
	Policies map[string]string   `json:"policies,omitempty" yaml:"policies,omitempty"` // kubearmor, file name to content
}

// GatekeeperExample groups the sample manifests shipped with a Gatekeeper
// policy under a common name.
type GatekeeperExample struct {
	Name  string           `json:"name" yaml:"name"`
	Cases []GatekeeperCase `json:"cases" yaml:"cases"`
}

// GatekeeperCase is a single sample manifest of a GatekeeperExample.
type GatekeeperCase struct {
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"`
	Content string `json:"content" yaml:"content"`
}

// Package is a snapshot of a package at one of its versions.
type Package struct {
	PackageID         string           `json:"package_id,omitempty" yaml:"package_id,omitempty"`
	Name              string           `json:"name" yaml:"name"`
	NormalizedName    string           `json:"normalized_name,omitempty" yaml:"normalized_name,omitempty"`
	DisplayName       string           `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Description       string           `json:"description,omitempty" yaml:"description,omitempty"`
	Version           string           `json:"version" yaml:"version"`
	AppVersion        string           `json:"app_version,omitempty" yaml:"app_version,omitempty"`
	AvailableVersions []Version        `json:"available_versions,omitempty" yaml:"available_versions,omitempty"`
	Deprecated        bool             `json:"deprecated" yaml:"deprecated"`
	TS                int64            `json:"ts,omitempty" yaml:"ts,omitempty"`
	ContentURL        string           `json:"content_url,omitempty" yaml:"content_url,omitempty"`
	Install           string           `json:"install,omitempty" yaml:"install,omitempty"`
	Data              *PackageData     `json:"data,omitempty" yaml:"data,omitempty"`
	DefaultChannel    string           `json:"default_channel,omitempty" yaml:"default_channel,omitempty"`
	Channels          []Channel        `json:"channels,omitempty" yaml:"channels,omitempty"`
	ContainersImages  []ContainerImage `json:"containers_images,omitempty" yaml:"containers_images,omitempty"`
	RelativePath      string           `json:"relative_path,omitempty" yaml:"relative_path,omitempty"`
	Repository        *Repository      `json:"repository" yaml:"repository"`
}

// IsLibrary reports whether the package declares itself as a library, which
// cannot be installed on its own.
func (p *Package) IsLibrary() bool {
	return p.Data != nil && p.Data.Type == ChartTypeLibrary
}
