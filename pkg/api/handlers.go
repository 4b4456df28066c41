package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hub-install-api/pkg/appcatalog"
	"hub-install-api/pkg/hub"
	"hub-install-api/pkg/installmethods"
	"hub-install-api/pkg/metrics"
	"hub-install-api/pkg/versions"
)

// PackageCatalog is the read side of the package catalog used by the handlers.
type PackageCatalog interface {
	GetAvailablePackages() []*hub.Package
	GetPackage(repository, name, version string) (*hub.Package, error)
	InstallContext(repository, name, version, channel string) (installmethods.PackageInstallContext, error)
}

// APIHandler holds dependencies for API handlers.
type APIHandler struct {
	catalog  PackageCatalog
	recorder *metrics.Recorder
	logger   *zap.Logger
}

// NewAPIHandler creates a new APIHandler. The recorder may be nil.
func NewAPIHandler(catalog PackageCatalog, recorder *metrics.Recorder, logger *zap.Logger) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		catalog:  catalog,
		recorder: recorder,
		logger:   logger.Named("api"),
	}
}

// GetPackagesHandler handles requests to list available packages.
func (h *APIHandler) GetPackagesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.GetAvailablePackages())
}

// GetPackageHandler handles requests for a package, at its latest version or
// at the one given in the version query parameter.
func (h *APIHandler) GetPackageHandler(c *gin.Context) {
	pkg, err := h.catalog.GetPackage(c.Param("repoName"), c.Param("packageName"), c.Query("version"))
	if err != nil {
		h.lookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// GetInstallMethodsHandler resolves the install methods of a catalog package.
func (h *APIHandler) GetInstallMethodsHandler(c *gin.Context) {
	ictx, err := h.catalog.InstallContext(
		c.Param("repoName"),
		c.Param("packageName"),
		c.Query("version"),
		c.Query("channel"),
	)
	if err != nil {
		h.lookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.resolve(ictx))
}

// ResolveInstallMethodsHandler resolves the install methods of the package
// context posted in the request body. When the body has no sorted_versions
// field they are derived from the package available versions; an explicit
// empty list is kept.
func (h *APIHandler) ResolveInstallMethodsHandler(c *gin.Context) {
	var ictx installmethods.PackageInstallContext
	if err := c.ShouldBindJSON(&ictx); err != nil {
		h.logger.Debug("Could not bind install context", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid install context: " + err.Error()})
		return
	}
	if ictx.SortedVersions == nil && ictx.Package != nil {
		ictx.SortedVersions = versions.SortNewestFirst(ictx.Package.AvailableVersions)
	}
	c.JSON(http.StatusOK, h.resolve(ictx))
}

func (h *APIHandler) resolve(ictx installmethods.PackageInstallContext) installmethods.Output {
	out := installmethods.Resolve(ictx)
	h.recorder.Observe(ictx, out)
	if out.Err != nil {
		h.logger.Debug("Install methods resolution halted",
			zap.String("package", packageID(ictx.Package)),
			zap.Error(out.Err),
		)
	}
	return out
}

func (h *APIHandler) lookupError(c *gin.Context, err error) {
	if errors.Is(err, appcatalog.ErrPackageNotFound) || errors.Is(err, appcatalog.ErrVersionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("Catalog lookup failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func packageID(pkg *hub.Package) string {
	if pkg == nil {
		return ""
	}
	if pkg.PackageID != "" {
		return pkg.PackageID
	}
	return pkg.Name
}
