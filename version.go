package mathjax

import (
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"
)

// MDBookVersion is the mdBook release this preprocessor is built and tested against.
const MDBookVersion = "0.4.40"

// compatibleRange accepts releases sharing MDBookVersion's caret range (^0.4.40 is >=0.4.40, <0.5.0).
var compatibleRange = sync.OnceValue(func() *semver.Constraints {
	c, err := semver.NewConstraint("^" + MDBookVersion)
	if err != nil {
		panic("mathjax: invalid MDBookVersion constraint: " + err.Error())
	}
	return c
})

// CheckVersion reports whether the calling mdBook version is in the compatible range.
// A mismatch is advisory; only an unparsable version is an error.
func CheckVersion(hostVersion string) (bool, error) {
	v, err := semver.StrictNewVersion(hostVersion)
	if err != nil {
		return false, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, hostVersion, err)
	}
	return compatibleRange().Check(v), nil
}
