package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/synthetic-data-lab/pkg/errors"
)

// SupportedCatalogVersions is the semver constraint a preset catalog document must satisfy.
const SupportedCatalogVersions = "^1.0.0"

// CheckCatalogVersion checks that a catalog document version can be read.
//
// Compatibility Rules:
//   - The version must be a semantic version, with or without a 'v' prefix
//   - The major version must be 1
//   - Minor and patch versions can differ (e.g., 1.0.0 and 1.4.2 are both readable)
func CheckCatalogVersion(catalogVersion string) error {
	catalogSemver, err := semver.NewVersion(strings.TrimPrefix(catalogVersion, "v"))
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidCatalog, err, "invalid catalog version '%s'", catalogVersion)
	}

	constraint, err := semver.NewConstraint(SupportedCatalogVersions)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCatalog, "invalid version constraint", err)
	}

	if !constraint.Check(catalogSemver) {
		return errors.Newf(errors.ErrCodeUnsupportedCatalogVersion,
			"catalog version %s does not satisfy %s", catalogSemver.String(), SupportedCatalogVersions)
	}

	return nil
}
