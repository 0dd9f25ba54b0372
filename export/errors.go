package export

import (
	"github.com/cockroachdb/errors"

	"github.com/dhamidi/objcexport/model"
)

// ErrNotExposed is returned when a declaration that fails the exposure
// policy is referenced from the exported surface. Generation stops: no
// partial header is produced.
var ErrNotExposed = errors.New("declaration is not exposed")

func notExposed(c *model.ClassModel, from string) error {
	err := errors.Wrapf(ErrNotExposed, "%s", c.Name)
	if from != "" {
		err = errors.Wrapf(err, "referenced from %s", from)
	}
	return errors.WithHintf(err, "make %s public or remove it from exported signatures", c.SimpleName)
}

// IsFatal reports whether err stopped a translation, as opposed to a
// configuration or usage error.
func IsFatal(err error) bool {
	return errors.Is(err, ErrNotExposed) || errors.IsAssertionFailure(err)
}
