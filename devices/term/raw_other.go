//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package term

import "github.com/pkg/errors"

func makeRaw(int) (func() error, error) {
	return nil, errors.New("raw mode is not supported on this platform")
}
