package validators

import "errors"

var (
	ErrPseudoEmpty    = errors.New("no pseudo provided")
	ErrPseudoTooShort = errors.New("pseudo must be at least 2 characters long")
	ErrPseudoTooLong  = errors.New("pseudo is too long")
)

func PseudoValidator(p string) error {
	if p == "" {
		return ErrPseudoEmpty
	}

	if len(p) < 2 {
		return ErrPseudoTooShort
	}

	if len(p) > 32 {
		return ErrPseudoTooLong
	}

	return nil
}
