package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etkecc/emailscore/internal/verify"
)

var (
	// ErrUnknownRule returned when a configured rule name is not known
	ErrUnknownRule = errors.New("unknown rule")
	// ErrMissingDependency returned when a rule collaborator is not provided
	ErrMissingDependency = errors.New("missing rule dependency")
)

// Deps are collaborators of the rules
type Deps struct {
	Disposable      DisposableChecker
	MX              MXResolver
	RoleBasedLocals []string
	MXStrict        bool
}

// Build creates rules by name, in the given order
func Build(names []string, deps Deps) ([]verify.Rule, error) {
	list := make([]verify.Rule, 0, len(names))
	for _, name := range names {
		rule, err := build(strings.ToLower(strings.TrimSpace(name)), deps)
		if err != nil {
			return nil, err
		}
		list = append(list, rule)
	}
	return list, nil
}

func build(name string, deps Deps) (verify.Rule, error) {
	switch name {
	case "format":
		return Format{}, nil
	case "domain":
		return DomainSanity{}, nil
	case "role":
		return NewRoleBased(deps.RoleBasedLocals), nil
	case "plus":
		return PlusAddressing{}, nil
	case "disposable":
		if deps.Disposable == nil {
			return nil, fmt.Errorf("%w: %q requires a disposable domain checker", ErrMissingDependency, name)
		}
		return NewDisposable(deps.Disposable), nil
	case "mx":
		if deps.MX == nil {
			return nil, fmt.Errorf("%w: %q requires an MX resolver", ErrMissingDependency, name)
		}
		return NewMX(deps.MX, deps.MXStrict), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
}
