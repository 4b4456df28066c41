// Package installmethods decides which installation instructions are offered
// for a package, in which order, and when installation is not possible at all.
//
// Resolve is a pure function of its input and is safe for concurrent use.
package installmethods

import (
	"hub-install-api/pkg/hub"
)

// Resolve returns the install methods available for the package in ictx.
//
// A missing package, version or repository yields an empty output without
// error. A tripped guard yields no methods and an error message. Otherwise the
// custom install method, when present, comes first, followed by whatever the
// repository kind contributes.
func Resolve(ictx PackageInstallContext) Output {
	out := Output{Methods: []InstallMethod{}}

	pkg := ictx.Package
	if pkg == nil || pkg.Version == "" || pkg.Repository == nil {
		return out
	}

	if err := runGuards(pkg, ictx.SortedVersions); err != nil {
		out.Err = err
		out.ErrorMessage = haltMessages[err]
		return out
	}

	if m, ok := customMethod(pkg); ok {
		out.Methods = append(out.Methods, m)
	}
	out.Methods = append(out.Methods, strategyFor(pkg.Repository.Kind)(pkg, ictx.ActiveChannel)...)

	return out
}

// customMethod wraps the publisher instructions, untouched.
func customMethod(pkg *hub.Package) (InstallMethod, bool) {
	if pkg.Install == "" {
		return InstallMethod{}, false
	}
	return InstallMethod{
		Label: "publisher",
		Title: "Publisher instructions",
		Kind:  Custom,
		Props: CustomProps{Install: pkg.Install},
	}, true
}
