package linkage

import (
	"fmt"
	"math"
)

// ValidationSeverity indicates whether a validation finding blocks
// processing or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks processing
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	LinkID   string             // which link has the problem (empty if configuration-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.LinkID == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] link %s: %s", e.Severity, e.LinkID, e.Message)
}

// ValidationResult bundles blocking errors and advisory warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks a configuration before layout. It never mutates cfg.
//
// Non-finite hub coordinates are errors. Zero-length links, links that
// repeat a hub pair and configurations without links are warnings; they
// still produce (degenerate) output.
func Validate(cfg *Configuration) ValidationResult {
	var result ValidationResult
	add := func(e ValidationError) {
		if e.Severity == SeverityError {
			result.Errors = append(result.Errors, e)
		} else {
			result.Warnings = append(result.Warnings, e)
		}
	}

	for _, e := range validateHubs(cfg) {
		add(e)
	}
	for _, e := range validateLinks(cfg) {
		add(e)
	}
	if cfg.IsEmpty() {
		add(ValidationError{
			Message:  "configuration has no links; output will be empty",
			Severity: SeverityWarning,
		})
	}
	return result
}

func validateHubs(cfg *Configuration) []ValidationError {
	var errs []ValidationError
	for _, h := range cfg.Hubs {
		if !finite(h.Position.X) || !finite(h.Position.Y) {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("hub %s has non-finite position (%v, %v)", h.Label(), h.Position.X, h.Position.Y),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func validateLinks(cfg *Configuration) []ValidationError {
	var errs []ValidationError
	seen := make(map[[2]HubID]bool)
	for _, l := range cfg.Links {
		if l.HubA == l.HubB {
			errs = append(errs, ValidationError{
				LinkID:   l.ID(),
				Message:  "zero-length link; its hubs coincide",
				Severity: SeverityWarning,
			})
		}

		key := [2]HubID{l.HubA.ID, l.HubB.ID}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if seen[key] {
			errs = append(errs, ValidationError{
				LinkID:   l.ID(),
				Message:  "duplicate link; another link joins the same hubs",
				Severity: SeverityWarning,
			})
			continue
		}
		seen[key] = true
	}
	return errs
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
