package hub

import (
	"errors"
	"fmt"
)

// ErrInvalidKindName is returned when a repository kind name is not recognised.
var ErrInvalidKindName = errors.New("invalid kind name")

// RepositoryKind represents the kind of a given repository.
type RepositoryKind int64

const (
	// Helm represents a repository with Helm charts.
	Helm RepositoryKind = 0

	// Falco represents a repository with Falco rules.
	Falco RepositoryKind = 1

	// OPA represents a repository with OPA policies.
	OPA RepositoryKind = 2

	// OLM represents a repository with OLM operators.
	OLM RepositoryKind = 3

	// TBAction represents a repository with Tinkerbell actions.
	TBAction RepositoryKind = 4

	// Krew represents a repository with kubectl plugins managed by Krew.
	Krew RepositoryKind = 5

	// HelmPlugin represents a repository with Helm plugins.
	HelmPlugin RepositoryKind = 6

	// TektonTask represents a repository with Tekton tasks.
	TektonTask RepositoryKind = 7

	// KedaScaler represents a repository with KEDA scalers.
	KedaScaler RepositoryKind = 8

	// CoreDNS represents a repository with CoreDNS plugins.
	CoreDNS RepositoryKind = 9

	// Keptn represents a repository with Keptn integrations.
	Keptn RepositoryKind = 10

	// TektonPipeline represents a repository with Tekton pipelines.
	TektonPipeline RepositoryKind = 11

	// Container represents a repository with container images.
	Container RepositoryKind = 12

	// Kubewarden represents a repository with Kubewarden policies.
	Kubewarden RepositoryKind = 13

	// Gatekeeper represents a repository with Gatekeeper policies.
	Gatekeeper RepositoryKind = 14

	// Kyverno represents a repository with Kyverno policies.
	Kyverno RepositoryKind = 15

	// KnativeClientPlugin represents a repository with Knative client plugins.
	KnativeClientPlugin RepositoryKind = 16

	// Backstage represents a repository with Backstage plugins.
	Backstage RepositoryKind = 17

	// ArgoTemplate represents a repository with Argo templates.
	ArgoTemplate RepositoryKind = 18

	// KubeArmor represents a repository with KubeArmor policies.
	KubeArmor RepositoryKind = 19

	// KCL represents a repository with KCL modules.
	KCL RepositoryKind = 20

	// Headlamp represents a repository with Headlamp plugins.
	Headlamp RepositoryKind = 21

	// InspektorGadget represents a repository with Inspektor Gadgets.
	InspektorGadget RepositoryKind = 22

	// TektonStepAction represents a repository with Tekton stepactions.
	TektonStepAction RepositoryKind = 23

	// Meshery represents a repository with Meshery designs.
	Meshery RepositoryKind = 24

	// OpenCost represents a repository with OpenCost plugins.
	OpenCost RepositoryKind = 25

	// Radius represents a repository with Radius recipes.
	Radius RepositoryKind = 26
)

var kindNames = map[RepositoryKind]string{
	Helm:                "helm",
	Falco:               "falco",
	OPA:                 "opa",
	OLM:                 "olm",
	TBAction:            "tbaction",
	Krew:                "krew",
	HelmPlugin:          "helm-plugin",
	TektonTask:          "tekton-task",
	KedaScaler:          "keda-scaler",
	CoreDNS:             "coredns",
	Keptn:               "keptn",
	TektonPipeline:      "tekton-pipeline",
	Container:           "container",
	Kubewarden:          "kubewarden",
	Gatekeeper:          "gatekeeper",
	Kyverno:             "kyverno",
	KnativeClientPlugin: "knative-client-plugin",
	Backstage:           "backstage",
	ArgoTemplate:        "argo-template",
	KubeArmor:           "kubearmor",
	KCL:                 "kcl",
	Headlamp:            "headlamp",
	InspektorGadget:     "inspektor-gadget",
	TektonStepAction:    "tekton-stepaction",
	Meshery:             "meshery",
	OpenCost:            "opencost",
	Radius:              "radius",
}

var kindsByName = func() map[string]RepositoryKind {
	m := make(map[string]RepositoryKind, len(kindNames))
	for kind, name := range kindNames {
		m[name] = kind
	}
	return m
}()

// GetKindName returns the name of the provided repository kind, or an empty
// string when the kind is unknown.
func GetKindName(kind RepositoryKind) string {
	return kindNames[kind]
}

// GetKindFromName returns the repository kind matching the provided name.
func GetKindFromName(name string) (RepositoryKind, error) {
	kind, ok := kindsByName[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrInvalidKindName, name)
	}
	return kind, nil
}

// String implements fmt.Stringer.
func (k RepositoryKind) String() string {
	if name := GetKindName(k); name != "" {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int64(k))
}
