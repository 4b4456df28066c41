package installmethods

import (
	"helm.sh/helm/v3/pkg/chart"

	"hub-install-api/pkg/hub"
)

// communityOperatorsRepository is the OperatorHub community catalog. OLM CLI
// instructions (kubectl create -f https://operatorhub.io/install/...) only
// resolve for operators published there, so other non-OCI OLM repositories
// get no generated method.
const communityOperatorsRepository = "community-operators"

// strategy returns the methods a repository kind contributes after the custom
// install method, if any.
type strategy func(pkg *hub.Package, activeChannel string) []InstallMethod

var strategies = map[hub.RepositoryKind]strategy{
	hub.Helm:             helmStrategy,
	hub.OLM:              olmStrategy,
	hub.Falco:            withoutCustomInstall(falcoStrategy),
	hub.Krew:             withoutCustomInstall(krewStrategy),
	hub.HelmPlugin:       withoutCustomInstall(helmPluginStrategy),
	hub.TektonTask:       withoutCustomInstall(tektonStrategy),
	hub.TektonPipeline:   withoutCustomInstall(tektonStrategy),
	hub.TektonStepAction: withoutCustomInstall(tektonStrategy),
	hub.Kubewarden:       withoutCustomInstall(kubewardenStrategy),
	hub.Gatekeeper:       withoutCustomInstall(gatekeeperStrategy),
	hub.KubeArmor:        withoutCustomInstall(kubeArmorStrategy),
}

// strategyFor returns the strategy registered for kind. Kinds without one
// contribute nothing.
func strategyFor(kind hub.RepositoryKind) strategy {
	if s, ok := strategies[kind]; ok {
		return s
	}
	return noMethods
}

func noMethods(*hub.Package, string) []InstallMethod {
	return nil
}

// withoutCustomInstall makes s an alternative to publisher instructions: it
// only contributes when the package has none.
func withoutCustomInstall(s strategy) strategy {
	return func(pkg *hub.Package, activeChannel string) []InstallMethod {
		if pkg.Install != "" {
			return nil
		}
		return s(pkg, activeChannel)
	}
}

func helmStrategy(pkg *hub.Package, _ string) []InstallMethod {
	if pkg.Repository.IsOCI() {
		return []InstallMethod{{
			Label: "v3",
			Title: "Helm v3 (>=3.8)",
			Kind:  HelmOCI,
			Props: HelmOCIProps{
				Name:       pkg.Name,
				Version:    pkg.Version,
				Repository: pkg.Repository,
			},
		}}
	}

	props := HelmProps{
		Name:       pkg.Name,
		Version:    pkg.Version,
		Repository: pkg.Repository,
		ContentURL: pkg.ContentURL,
	}
	methods := []InstallMethod{{Label: "v3", Title: "Helm v3", Kind: Helm, Props: props}}
	// apiVersion v2 charts cannot be installed with Helm 2.
	if pkg.Data == nil || pkg.Data.APIVersion != chart.APIVersionV2 {
		methods = append(methods, InstallMethod{Label: "v2", Title: "Helm v2", Kind: Helm, Props: props})
	}
	return methods
}

func olmStrategy(pkg *hub.Package, activeChannel string) []InstallMethod {
	if pkg.Repository.IsOCI() {
		return []InstallMethod{{
			Label: "cli",
			Title: "OLM OCI",
			Kind:  OLMOCI,
			Props: OLMOCIProps{
				Name:          pkg.Name,
				Repository:    pkg.Repository,
				ActiveChannel: activeChannel,
			},
		}}
	}
	if pkg.Repository.Name != communityOperatorsRepository {
		return nil
	}

	var isGlobalOperator bool
	if pkg.Data != nil {
		isGlobalOperator = pkg.Data.IsGlobalOperator
	}
	return []InstallMethod{{
		Label:      "cli",
		Title:      "Operator Lifecycle Manager",
		ShortTitle: "OLM CLI",
		Kind:       OLM,
		Props: OLMProps{
			Name:             pkg.Name,
			IsGlobalOperator: isGlobalOperator,
			ActiveChannel:    activeChannel,
		},
	}}
}

func falcoStrategy(pkg *hub.Package, _ string) []InstallMethod {
	return []InstallMethod{{
		Label: "cli",
		Title: "Helm CLI",
		Kind:  Falco,
		Props: FalcoProps{NormalizedName: pkg.NormalizedName, IsPrivate: pkg.Repository.Private},
	}}
}

func krewStrategy(pkg *hub.Package, _ string) []InstallMethod {
	return []InstallMethod{{
		Label: "krew",
		Title: "Krew",
		Kind:  Krew,
		Props: KrewProps{Name: pkg.Name, Repository: pkg.Repository},
	}}
}

func helmPluginStrategy(pkg *hub.Package, _ string) []InstallMethod {
	return []InstallMethod{{
		Label: "cli",
		Title: "Helm CLI",
		Kind:  HelmPlugin,
		Props: HelmPluginProps{Repository: pkg.Repository},
	}}
}

func tektonStrategy(pkg *hub.Package, _ string) []InstallMethod {
	return []InstallMethod{{
		Label: "kubectl",
		Title: "Kubectl",
		Kind:  Tekton,
		Props: TektonProps{
			ContentURL: pkg.ContentURL,
			Repository: pkg.Repository,
			IsPrivate:  pkg.Repository.Private,
		},
	}}
}

func kubewardenStrategy(pkg *hub.Package, _ string) []InstallMethod {
	return []InstallMethod{{
		Label: "kubewarden",
		Title: "Kubewarden CLI",
		Kind:  Kubewarden,
		Props: KubewardenProps{Images: pkg.ContainersImages, IsPrivate: pkg.Repository.Private},
	}}
}

func gatekeeperStrategy(pkg *hub.Package, _ string) []InstallMethod {
	var examples []hub.GatekeeperExample
	if pkg.Data != nil {
		examples = pkg.Data.Examples
	}
	return []InstallMethod{
		{
			Label: "kustomize",
			Title: "Kustomize",
			Kind:  KustomizeGatekeeperInstall,
			Props: RelativePathProps{Repository: pkg.Repository, RelativePath: pkg.RelativePath},
		},
		{
			Label: "kubectl",
			Title: "Kubectl",
			Kind:  KubectlGatekeeperInstall,
			Props: GatekeeperKubectlProps{
				Repository:   pkg.Repository,
				RelativePath: pkg.RelativePath,
				Examples:     examples,
			},
		},
	}
}

func kubeArmorStrategy(pkg *hub.Package, _ string) []InstallMethod {
	var policies map[string]string
	if pkg.Data != nil {
		policies = pkg.Data.Policies
	}
	return []InstallMethod{{
		Label: "kubectl",
		Title: "Kubectl",
		Kind:  KubeArmor,
		Props: KubeArmorProps{
			Repository:   pkg.Repository,
			RelativePath: pkg.RelativePath,
			Policies:     policies,
		},
	}}
}
