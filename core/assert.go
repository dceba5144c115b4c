package core

import "fmt"

// ContractError is the panic value raised for caller contract violations
// Recovering from it is only meaningful at the process boundary
type ContractError struct {
	Msg string
}

func (e ContractError) Error() string {
	return "contract violation: " + e.Msg
}

// Assert panics with a ContractError when cond is false
func Assert(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(ContractError{Msg: fmt.Sprintf(format, args...)})
}
