// Package capability decides whether the requirements of a handler are met by an execution context.
package capability

import (
	"fmt"

	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/handler"
)

// Verdict is the outcome of checking one requirement.
type Verdict int

const (
	// Met means the capability is available.
	Met Verdict = iota
	// Unmet means the capability is missing; the accompanying message explains why.
	Unmet
	// Indeterminate means the capability is not part of the known set.
	Indeterminate
)

func (v Verdict) String() string {
	switch v {
	case Met:
		return "met"
	case Unmet:
		return "unmet"
	case Indeterminate:
		return "indeterminate"
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}

// Checker evaluates requirements against an ExecutionContext.
type Checker struct{}

// New creates a Checker.
func New() *Checker {
	return &Checker{}
}

// Check returns the verdict for one requirement of h.
// For Unmet, the message is either the handler-specific one (see handler.RequirementMessenger)
// or the generic "No <capability> available!".
func (c *Checker) Check(ec domain.ExecutionContext, req domain.Capability, h handler.Handler) (Verdict, string) {
	if !req.Known() {
		return Indeterminate, ""
	}
	if available(ec, req) {
		return Met, ""
	}
	return Unmet, message(req, h)
}

func available(ec domain.ExecutionContext, req domain.Capability) bool {
	if ec == nil || !ec.Has(req) {
		return false
	}
	switch req {
	case domain.CapSurface:
		return ec.Surface() != nil
	case domain.CapDataManager:
		return ec.Data() != nil
	case domain.CapUndo:
		return ec.Undo() != nil
	case domain.CapConnection:
		conn := ec.Connection()
		return conn != nil && conn.IsConnected()
	}
	return false
}

func message(req domain.Capability, h handler.Handler) string {
	if m, ok := h.(handler.RequirementMessenger); ok {
		if msg := m.UnmetMessage(req); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("No %s available!", req)
}
