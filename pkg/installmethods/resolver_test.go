package installmethods

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hub-install-api/pkg/hub"
)

const (
	helmRepoURL    = "https://artifacthub.github.io/hub/chart/"
	helmContentURL = "https://artifacthub.github.io/hub/chart/artifact-hub-0.11.0.tgz"
)

func helmPackage() *hub.Package {
	return &hub.Package{
		Name:           "artifact-hub",
		NormalizedName: "artifact-hub",
		Version:        "0.11.0",
		ContentURL:     helmContentURL,
		Repository: &hub.Repository{
			Name: "artifact-hub",
			URL:  helmRepoURL,
			Kind: hub.Helm,
		},
	}
}

func olmPackage(repoName, url string) *hub.Package {
	return &hub.Package{
		Name:    "etcd",
		Version: "0.9.4",
		Data:    &hub.PackageData{IsGlobalOperator: true},
		Repository: &hub.Repository{
			Name: repoName,
			URL:  url,
			Kind: hub.OLM,
		},
	}
}

func versions(vs ...string) []hub.Version {
	out := make([]hub.Version, 0, len(vs))
	for i, v := range vs {
		out = append(out, hub.Version{Version: v, TS: int64(1600000000 - i)})
	}
	return out
}

func labels(out Output) []string {
	l := make([]string, 0, len(out.Methods))
	for _, m := range out.Methods {
		l = append(l, m.Label)
	}
	return l
}

func TestResolveNothingToResolve(t *testing.T) {
	t.Parallel()

	noVersion := helmPackage()
	noVersion.Version = ""
	noRepository := helmPackage()
	noRepository.Repository = nil

	tests := []struct {
		name string
		ictx PackageInstallContext
	}{
		{"no package", PackageInstallContext{}},
		{"no version", PackageInstallContext{Package: noVersion, SortedVersions: versions("1.0.0")}},
		{"no repository", PackageInstallContext{Package: noRepository}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resolve(tt.ictx)
			assert.NotNil(t, out.Methods)
			assert.Empty(t, out.Methods)
			assert.Empty(t, out.ErrorMessage)
			assert.NoError(t, out.Err)
		})
	}
}

func TestResolveHelm(t *testing.T) {
	t.Parallel()

	t.Run("http repository", func(t *testing.T) {
		pkg := helmPackage()
		out := Resolve(PackageInstallContext{Package: pkg, SortedVersions: versions("0.11.0")})

		expected := HelmProps{
			Name:       "artifact-hub",
			Version:    "0.11.0",
			Repository: pkg.Repository,
			ContentURL: helmContentURL,
		}
		require.Len(t, out.Methods, 2)
		assert.Equal(t, InstallMethod{Label: "v3", Title: "Helm v3", Kind: Helm, Props: expected}, out.Methods[0])
		assert.Equal(t, InstallMethod{Label: "v2", Title: "Helm v2", Kind: Helm, Props: expected}, out.Methods[1])
		assert.Empty(t, out.ErrorMessage)
	})

	t.Run("old versions are installable", func(t *testing.T) {
		out := Resolve(PackageInstallContext{Package: helmPackage(), SortedVersions: versions("1.0.0", "0.11.0")})
		assert.Equal(t, []string{"v3", "v2"}, labels(out))
	})

	t.Run("apiVersion v2 chart", func(t *testing.T) {
		pkg := helmPackage()
		pkg.Data = &hub.PackageData{APIVersion: "v2"}
		out := Resolve(PackageInstallContext{Package: pkg})
		require.Len(t, out.Methods, 1)
		assert.Equal(t, "v3", out.Methods[0].Label)
		assert.Equal(t, Helm, out.Methods[0].Kind)
	})

	t.Run("oci repository", func(t *testing.T) {
		pkg := helmPackage()
		pkg.Repository.URL = "oci://ghcr.io/artifacthub/artifact-hub"
		out := Resolve(PackageInstallContext{Package: pkg})
		require.Len(t, out.Methods, 1)
		assert.Equal(t, InstallMethod{
			Label: "v3",
			Title: "Helm v3 (>=3.8)",
			Kind:  HelmOCI,
			Props: HelmOCIProps{Name: "artifact-hub", Version: "0.11.0", Repository: pkg.Repository},
		}, out.Methods[0])
	})

	t.Run("oci repository with custom install", func(t *testing.T) {
		pkg := helmPackage()
		pkg.Repository.URL = "oci://ghcr.io/artifacthub/artifact-hub"
		pkg.Install = "## Install\n\n```helm install ...```"
		out := Resolve(PackageInstallContext{Package: pkg})
		require.Len(t, out.Methods, 2)
		assert.Equal(t, Custom, out.Methods[0].Kind)
		assert.Equal(t, CustomProps{Install: pkg.Install}, out.Methods[0].Props)
		assert.Equal(t, HelmOCI, out.Methods[1].Kind)
	})

	t.Run("library chart", func(t *testing.T) {
		pkg := helmPackage()
		pkg.Install = "custom"
		pkg.Data = &hub.PackageData{Type: hub.ChartTypeLibrary}
		out := Resolve(PackageInstallContext{Package: pkg, SortedVersions: versions("0.11.0")})
		assert.Empty(t, out.Methods)
		assert.Equal(t, "A library chart is not installable", out.ErrorMessage)
		assert.ErrorIs(t, out.Err, ErrNotInstallableType)
	})

	t.Run("application chart", func(t *testing.T) {
		pkg := helmPackage()
		pkg.Data = &hub.PackageData{Type: hub.ChartTypeApplication}
		out := Resolve(PackageInstallContext{Package: pkg})
		assert.Len(t, out.Methods, 2)
	})
}

func TestResolveOLM(t *testing.T) {
	t.Parallel()

	t.Run("community operators", func(t *testing.T) {
		pkg := olmPackage("community-operators", "https://github.com/operator-framework/community-operators/upstream")
		out := Resolve(PackageInstallContext{
			Package:        pkg,
			SortedVersions: versions("0.9.4", "0.9.2"),
			ActiveChannel:  "clusterwide-alpha",
		})
		require.Len(t, out.Methods, 1)
		assert.Equal(t, InstallMethod{
			Label:      "cli",
			Title:      "Operator Lifecycle Manager",
			ShortTitle: "OLM CLI",
			Kind:       OLM,
			Props:      OLMProps{Name: "etcd", IsGlobalOperator: true, ActiveChannel: "clusterwide-alpha"},
		}, out.Methods[0])
	})

	t.Run("community operators without data", func(t *testing.T) {
		pkg := olmPackage("community-operators", "https://github.com/operator-framework/community-operators/upstream")
		pkg.Data = nil
		out := Resolve(PackageInstallContext{Package: pkg, SortedVersions: versions("0.9.4")})
		require.Len(t, out.Methods, 1)
		assert.Equal(t, OLMProps{Name: "etcd"}, out.Methods[0].Props)
	})

	t.Run("other repository", func(t *testing.T) {
		pkg := olmPackage("other-operators", "https://github.com/example/operators")
		out := Resolve(PackageInstallContext{Package: pkg, SortedVersions: versions("0.9.4")})
		assert.Empty(t, out.Methods)
		assert.Empty(t, out.ErrorMessage)
	})

	t.Run("other repository with custom install", func(t *testing.T) {
		pkg := olmPackage("other-operators", "https://github.com/example/operators")
		pkg.Install = "kubectl apply -f operator.yaml"
		out := Resolve(PackageInstallContext{Package: pkg, SortedVersions: versions("0.9.4")})
		assert.Equal(t, []string{"publisher"}, labels(out))
	})

	t.Run("oci repository", func(t *testing.T) {
		pkg := olmPackage("operators-oci", "oci://quay.io/operators/catalog")
		out := Resolve(PackageInstallContext{Package: pkg, SortedVersions: versions("0.9.4"), ActiveChannel: "stable"})
		require.Len(t, out.Methods, 1)
		assert.Equal(t, InstallMethod{
			Label: "cli",
			Title: "OLM OCI",
			Kind:  OLMOCI,
			Props: OLMOCIProps{Name: "etcd", Repository: pkg.Repository, ActiveChannel: "stable"},
		}, out.Methods[0])
	})

	t.Run("not the current version", func(t *testing.T) {
		pkg := olmPackage("community-operators", "https://github.com/operator-framework/community-operators/upstream")
		pkg.Install = "custom instructions"
		out := Resolve(PackageInstallContext{Package: pkg, SortedVersions: versions("1.0.0", "0.9.4")})
		assert.Equal(t, Output{
			Methods:      []InstallMethod{},
			ErrorMessage: "Only the current version can be installed",
			Err:          ErrVersionNotCurrent,
		}, out)
	})

	t.Run("no known versions", func(t *testing.T) {
		pkg := olmPackage("community-operators", "https://github.com/operator-framework/community-operators/upstream")
		out := Resolve(PackageInstallContext{Package: pkg})
		assert.Len(t, out.Methods, 1)
		assert.Empty(t, out.ErrorMessage)
	})
}

func TestResolveFalco(t *testing.T) {
	t.Parallel()

	pkg := &hub.Package{
		Name:           "falco-rules",
		NormalizedName: "falco-rules",
		Version:        "1.0.0",
		Repository:     &hub.Repository{Name: "security-hub", URL: "https://github.com/falcosecurity/cloud-native-security-hub", Kind: hub.Falco},
	}

	out := Resolve(PackageInstallContext{Package: pkg})
	require.Len(t, out.Methods, 1)
	assert.Equal(t, InstallMethod{
		Label: "cli",
		Title: "Helm CLI",
		Kind:  Falco,
		Props: FalcoProps{NormalizedName: "falco-rules"},
	}, out.Methods[0])

	withInstall := *pkg
	withInstall.Install = "falcoctl artifact install falco-rules"
	out = Resolve(PackageInstallContext{Package: &withInstall})
	require.Len(t, out.Methods, 1)
	assert.Equal(t, Custom, out.Methods[0].Kind)
}

func TestResolveSupplementedKinds(t *testing.T) {
	t.Parallel()

	repo := func(kind hub.RepositoryKind) *hub.Repository {
		return &hub.Repository{Name: "repo", URL: "https://github.com/example/repo", Kind: kind}
	}

	tests := []struct {
		name   string
		kind   hub.RepositoryKind
		labels []string
		kinds  []InstallMethodKind
	}{
		{"krew", hub.Krew, []string{"krew"}, []InstallMethodKind{Krew}},
		{"helm plugin", hub.HelmPlugin, []string{"cli"}, []InstallMethodKind{HelmPlugin}},
		{"tekton task", hub.TektonTask, []string{"kubectl"}, []InstallMethodKind{Tekton}},
		{"tekton pipeline", hub.TektonPipeline, []string{"kubectl"}, []InstallMethodKind{Tekton}},
		{"tekton stepaction", hub.TektonStepAction, []string{"kubectl"}, []InstallMethodKind{Tekton}},
		{"kubewarden", hub.Kubewarden, []string{"kubewarden"}, []InstallMethodKind{Kubewarden}},
		{"gatekeeper", hub.Gatekeeper, []string{"kustomize", "kubectl"}, []InstallMethodKind{KustomizeGatekeeperInstall, KubectlGatekeeperInstall}},
		{"kubearmor", hub.KubeArmor, []string{"kubectl"}, []InstallMethodKind{KubeArmor}},
		{"opa", hub.OPA, []string{}, []InstallMethodKind{}},
		{"container", hub.Container, []string{}, []InstallMethodKind{}},
		{"unknown kind", hub.RepositoryKind(99), []string{}, []InstallMethodKind{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := &hub.Package{
				Name:             "pkg",
				Version:          "1.0.0",
				ContentURL:       "https://example.com/pkg.yaml",
				RelativePath:     "library/general/allowedrepos",
				ContainersImages: []hub.ContainerImage{{Name: "policy", Image: "ghcr.io/kubewarden/policies/pod-privileged:v0.1.9"}},
				Repository:       repo(tt.kind),
			}
			out := Resolve(PackageInstallContext{Package: pkg})
			assert.Equal(t, tt.labels, labels(out))
			kinds := make([]InstallMethodKind, 0, len(out.Methods))
			for _, m := range out.Methods {
				kinds = append(kinds, m.Kind)
			}
			assert.Equal(t, tt.kinds, kinds)

			pkg.Install = "custom"
			out = Resolve(PackageInstallContext{Package: pkg})
			assert.Equal(t, []string{"publisher"}, labels(out))
		})
	}
}

func TestResolveSupplementedKindsProps(t *testing.T) {
	t.Parallel()

	privateRepo := func(kind hub.RepositoryKind) *hub.Repository {
		return &hub.Repository{Name: "repo", URL: "https://github.com/example/repo", Kind: kind, Private: true}
	}
	images := []hub.ContainerImage{{Name: "policy", Image: "ghcr.io/kubewarden/policies/pod-privileged:v0.1.9"}}
	examples := []hub.GatekeeperExample{{
		Name: "memory-ratio-only",
		Cases: []hub.GatekeeperCase{{
			Name:    "constraint",
			Path:    "samples/container-must-meet-ratio/constraint.yaml",
			Content: "kind: K8sContainerRatios\n",
		}},
	}}
	policies := map[string]string{"ksp-block-shell.yaml": "kind: KubeArmorPolicy\n"}

	t.Run("falco", func(t *testing.T) {
		r := privateRepo(hub.Falco)
		out := Resolve(PackageInstallContext{Package: &hub.Package{
			Name: "nginx-rules", NormalizedName: "nginx", Version: "1.0.0", Repository: r,
		}})
		require.Len(t, out.Methods, 1)
		assert.Equal(t, FalcoProps{NormalizedName: "nginx", IsPrivate: true}, out.Methods[0].Props)
	})

	t.Run("tekton", func(t *testing.T) {
		r := privateRepo(hub.TektonTask)
		out := Resolve(PackageInstallContext{Package: &hub.Package{
			Name: "git-clone", Version: "0.9.0", ContentURL: "https://example.com/git-clone.yaml", Repository: r,
		}})
		require.Len(t, out.Methods, 1)
		assert.Equal(t, TektonProps{
			ContentURL: "https://example.com/git-clone.yaml",
			Repository: r,
			IsPrivate:  true,
		}, out.Methods[0].Props)
	})

	t.Run("kubewarden", func(t *testing.T) {
		r := privateRepo(hub.Kubewarden)
		out := Resolve(PackageInstallContext{Package: &hub.Package{
			Name: "pod-privileged", Version: "0.1.9", ContainersImages: images, Repository: r,
		}})
		require.Len(t, out.Methods, 1)
		assert.Equal(t, KubewardenProps{Images: images, IsPrivate: true}, out.Methods[0].Props)
	})

	t.Run("gatekeeper", func(t *testing.T) {
		r := privateRepo(hub.Gatekeeper)
		out := Resolve(PackageInstallContext{Package: &hub.Package{
			Name:         "containerresourceratios",
			Version:      "1.0.0",
			RelativePath: "/general/containerresourceratios",
			Data:         &hub.PackageData{Examples: examples},
			Repository:   r,
		}})
		require.Len(t, out.Methods, 2)
		assert.Equal(t, RelativePathProps{
			Repository:   r,
			RelativePath: "/general/containerresourceratios",
		}, out.Methods[0].Props)
		assert.Equal(t, GatekeeperKubectlProps{
			Repository:   r,
			RelativePath: "/general/containerresourceratios",
			Examples:     examples,
		}, out.Methods[1].Props)
	})

	t.Run("gatekeeper without data", func(t *testing.T) {
		out := Resolve(PackageInstallContext{Package: &hub.Package{
			Name: "k8srequiredlabels", Version: "1.0.0", Repository: privateRepo(hub.Gatekeeper),
		}})
		require.Len(t, out.Methods, 2)
		props, ok := out.Methods[1].Props.(GatekeeperKubectlProps)
		require.True(t, ok)
		assert.Nil(t, props.Examples)
	})

	t.Run("kubearmor", func(t *testing.T) {
		r := privateRepo(hub.KubeArmor)
		out := Resolve(PackageInstallContext{Package: &hub.Package{
			Name:         "block-shell",
			Version:      "1.0.0",
			RelativePath: "/mitre/block-shell",
			Data:         &hub.PackageData{Policies: policies},
			Repository:   r,
		}})
		require.Len(t, out.Methods, 1)
		assert.Equal(t, KubeArmorProps{
			Repository:   r,
			RelativePath: "/mitre/block-shell",
			Policies:     policies,
		}, out.Methods[0].Props)

		b, err := json.Marshal(out.Methods[0].Props)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"policies":{"ksp-block-shell.yaml":"kind: KubeArmorPolicy\n"}`)
	})
}

func TestResolveCustomMethodFirst(t *testing.T) {
	t.Parallel()

	pkg := helmPackage()
	pkg.Install = "<h1>install</h1>"
	out := Resolve(PackageInstallContext{Package: pkg})

	require.Len(t, out.Methods, 3)
	assert.Equal(t, InstallMethod{
		Label: "publisher",
		Title: "Publisher instructions",
		Kind:  Custom,
		Props: CustomProps{Install: "<h1>install</h1>"},
	}, out.Methods[0])
	assert.Equal(t, []string{"publisher", "v3", "v2"}, labels(out))
}

func TestResolveIsPure(t *testing.T) {
	t.Parallel()

	ictx := PackageInstallContext{
		Package:        olmPackage("community-operators", "https://github.com/operator-framework/community-operators/upstream"),
		SortedVersions: versions("0.9.4"),
		ActiveChannel:  "alpha",
	}
	assert.Equal(t, Resolve(ictx), Resolve(ictx))
}

func TestOutputJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Resolve(PackageInstallContext{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"methods":[]}`, string(b))

	pkg := olmPackage("community-operators", "https://github.com/operator-framework/community-operators/upstream")
	b, err = json.Marshal(Resolve(PackageInstallContext{Package: pkg, SortedVersions: versions("1.0.0")}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"methods":[],"error_message":"Only the current version can be installed"}`, string(b))

	b, err = json.Marshal(Resolve(PackageInstallContext{Package: pkg, ActiveChannel: "alpha"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"methods":[{
		"label":"cli",
		"title":"Operator Lifecycle Manager",
		"short_title":"OLM CLI",
		"kind":3,
		"props":{"name":"etcd","is_global_operator":true,"active_channel":"alpha"}
	}]}`, string(b))
}
