package installmethods

import (
	"hub-install-api/pkg/hub"
)

// InstallMethodKind identifies the renderer a method is meant for.
type InstallMethodKind int

// Install method kinds.
const (
	Custom InstallMethodKind = iota
	Helm
	HelmOCI
	OLM
	OLMOCI
	Falco
	Krew
	HelmPlugin
	Tekton
	Kubewarden
	KustomizeGatekeeperInstall
	KubectlGatekeeperInstall
	KubeArmor
)

var methodKindNames = [...]string{
	Custom:                     "custom",
	Helm:                       "helm",
	HelmOCI:                    "helm-oci",
	OLM:                        "olm",
	OLMOCI:                     "olm-oci",
	Falco:                      "falco",
	Krew:                       "krew",
	HelmPlugin:                 "helm-plugin",
	Tekton:                     "tekton",
	Kubewarden:                 "kubewarden",
	KustomizeGatekeeperInstall: "kustomize-gatekeeper",
	KubectlGatekeeperInstall:   "kubectl-gatekeeper",
	KubeArmor:                  "kubearmor",
}

func (k InstallMethodKind) String() string {
	if k < 0 || int(k) >= len(methodKindNames) {
		return "unknown"
	}
	return methodKindNames[k]
}

// Props is the kind specific payload of an InstallMethod. Each implementation
// belongs to exactly one InstallMethodKind.
type Props interface {
	installProps()
}

// CustomProps carries publisher supplied instructions, verbatim.
type CustomProps struct {
	Install string `json:"install"`
}

// HelmProps is used by the Helm v3 and v2 methods.
type HelmProps struct {
	Name       string          `json:"name"`
	Version    string          `json:"version"`
	Repository *hub.Repository `json:"repository"`
	ContentURL string          `json:"content_url,omitempty"`
}

// HelmOCIProps is used by the Helm OCI method.
type HelmOCIProps struct {
	Name       string          `json:"name"`
	Version    string          `json:"version"`
	Repository *hub.Repository `json:"repository"`
}

// OLMProps is used by the OLM CLI method.
type OLMProps struct {
	Name             string `json:"name"`
	IsGlobalOperator bool   `json:"is_global_operator"`
	ActiveChannel    string `json:"active_channel,omitempty"`
}

// OLMOCIProps is used by the OLM OCI method.
type OLMOCIProps struct {
	Name          string          `json:"name"`
	Repository    *hub.Repository `json:"repository"`
	ActiveChannel string          `json:"active_channel,omitempty"`
}

// FalcoProps is used by the Falco rules CLI method.
type FalcoProps struct {
	NormalizedName string `json:"normalized_name"`
	IsPrivate      bool   `json:"is_private"`
}

// KrewProps is used by the Krew method.
type KrewProps struct {
	Name       string          `json:"name"`
	Repository *hub.Repository `json:"repository"`
}

// HelmPluginProps is used by the Helm plugin CLI method.
type HelmPluginProps struct {
	Repository *hub.Repository `json:"repository"`
}

// TektonProps is used by the Tekton kubectl method.
type TektonProps struct {
	ContentURL string          `json:"content_url,omitempty"`
	Repository *hub.Repository `json:"repository"`
	IsPrivate  bool            `json:"is_private"`
}

// KubewardenProps is used by the Kubewarden CLI method.
type KubewardenProps struct {
	Images    []hub.ContainerImage `json:"images"`
	IsPrivate bool                 `json:"is_private"`
}

// RelativePathProps is used by the Gatekeeper kustomize method.
type RelativePathProps struct {
	Repository   *hub.Repository `json:"repository"`
	RelativePath string          `json:"relative_path"`
}

// GatekeeperKubectlProps is used by the Gatekeeper kubectl method.
type GatekeeperKubectlProps struct {
	Repository   *hub.Repository         `json:"repository"`
	RelativePath string                  `json:"relative_path"`
	Examples     []hub.GatekeeperExample `json:"examples,omitempty"`
}

// KubeArmorProps is used by the KubeArmor kubectl method.
type KubeArmorProps struct {
	Repository   *hub.Repository   `json:"repository"`
	RelativePath string            `json:"relative_path"`
	Policies     map[string]string `json:"policies,omitempty"`
}

func (CustomProps) installProps()            {}
func (HelmProps) installProps()              {}
func (HelmOCIProps) installProps()           {}
func (OLMProps) installProps()               {}
func (OLMOCIProps) installProps()            {}
func (FalcoProps) installProps()             {}
func (KrewProps) installProps()              {}
func (HelmPluginProps) installProps()        {}
func (TektonProps) installProps()            {}
func (KubewardenProps) installProps()        {}
func (RelativePathProps) installProps()      {}
func (GatekeeperKubectlProps) installProps() {}
func (KubeArmorProps) installProps()         {}

// InstallMethod describes one way of installing a package.
type InstallMethod struct {
	Label      string            `json:"label"`
	Title      string            `json:"title"`
	ShortTitle string            `json:"short_title,omitempty"`
	Kind       InstallMethodKind `json:"kind"`
	Props      Props             `json:"props"`
}

// PackageInstallContext is the input of a resolution.
type PackageInstallContext struct {
	// Package is the selected package snapshot. Nil means nothing to resolve.
	Package *hub.Package `json:"package" yaml:"package"`
	// SortedVersions must be ordered newest first. An explicit empty list
	// disables the version currency check.
	SortedVersions []hub.Version `json:"sorted_versions" yaml:"sorted_versions"`
	ActiveChannel  string        `json:"active_channel,omitempty" yaml:"active_channel,omitempty"`
}

// Output is the result of a resolution. ErrorMessage and Methods are never
// both set.
type Output struct {
	Methods      []InstallMethod `json:"methods"`
	ErrorMessage string          `json:"error_message,omitempty"`

	// Err is the halting condition behind ErrorMessage, if any.
	Err error `json:"-"`
}
