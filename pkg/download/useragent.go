package download

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/esfalsa/pallets/pkg/errors"
)

const (
	// Product is the product token sent in the User-Agent header.
	Product = "pallets"
	// Maintainer is the author contact the archive attributes traffic to.
	Maintainer = "Esfalsa"
)

// UserAgent builds the identifying header value sent with every request:
// pallets/<version> (by:Esfalsa, usedBy:<user>).
func UserAgent(appVersion, user string) (string, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return "", errors.ErrUserRequired
	}
	v, err := version.NewVersion(appVersion)
	if err != nil {
		return "", errors.Wrapf(err, "invalid application version %q", appVersion)
	}
	return fmt.Sprintf("%s/%s (by:%s, usedBy:%s)", Product, v.String(), Maintainer, user), nil
}
