package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/linkfab/pkg/geom"
	zygo "github.com/glycerine/zygomys/zygo"
	"gonum.org/v1/gonum/spatial/r2"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms linkage source code before passing it to
// zygomys. Besides turning ; comments into // comments it performs two
// transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: crank-hub -> crank_hub
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpHub wraps a hub position so it can be bound with def and passed
// between builtins.
type sexpHub struct {
	pos r2.Vec
}

func (h *sexpHub) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(hub %g %g)", h.pos.X, h.pos.Y)
}
func (h *sexpHub) Type() *zygo.RegisteredType { return nil }

// sexpSegment is the value returned by the segment-recording builtins.
type sexpSegment struct {
	seg geom.Segment
}

func (s *sexpSegment) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(segment %g %g %g %g)", s.seg.A.X, s.seg.A.Y, s.seg.B.X, s.seg.B.Y)
}
func (s *sexpSegment) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds keyword and positional arguments split by parseArgs.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs splits builtin arguments into keyword and positional lists.
// A keyword with no following value maps to SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value conversion helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toHub(s zygo.Sexp) (r2.Vec, error) {
	if h, ok := s.(*sexpHub); ok {
		return h.pos, nil
	}
	return r2.Vec{}, fmt.Errorf("expected hub, got %T (%s)", s, s.SexpString(nil))
}

// toFloats converts exactly n numeric arguments.
func toFloats(fn string, args []zygo.Sexp, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires exactly %d arguments, got %d", fn, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", fn, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// toHubs converts every argument to a hub position.
func toHubs(fn string, args []zygo.Sexp) ([]r2.Vec, error) {
	out := make([]r2.Vec, len(args))
	for i, a := range args {
		p, err := toHub(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", fn, i+1, err)
		}
		out[i] = p
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// recorder collects segments in declaration order.
type recorder struct {
	segments []geom.Segment
}

func (r *recorder) add(a, b r2.Vec) zygo.Sexp {
	s := geom.Segment{A: a, B: b}
	r.segments = append(r.segments, s)
	return &sexpSegment{seg: s}
}

// registerBuiltins adds the linkage DSL functions to env. Every segment
// declared by user code is appended to rec.
//
//	(hub x y)                  a pivot point
//	(polar hub angle length)   the point at angle degrees and length from hub;
//	                           also (polar hub :angle a :length l)
//	(link a b)                 a segment between two hubs
//	(segment x1 y1 x2 y2)      a segment from raw coordinates
//	(chain a b c ...)          links between consecutive hubs
//	(closed-chain a b c ...)   chain closed back to its first hub
func registerBuiltins(env *zygo.Zlisp, rec *recorder) {

	env.AddFunction("hub", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		xy, err := toFloats("hub", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpHub{pos: r2.Vec{X: xy[0], Y: xy[1]}}, nil
	})

	env.AddFunction("polar", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("polar requires a hub as first argument")
		}
		from, err := toHub(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polar: origin: %w", err)
		}

		// angle and length may be given positionally or as :angle / :length.
		rest := pa.positional[1:]
		vals := map[string]float64{}
		for _, key := range []string{"angle", "length"} {
			v, ok := pa.kw[key]
			if !ok {
				if len(rest) == 0 {
					return zygo.SexpNull, fmt.Errorf("polar: missing %s", key)
				}
				v, rest = rest[0], rest[1:]
			}
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polar: %s: %w", key, err)
			}
			vals[key] = f
		}
		if len(rest) > 0 {
			return zygo.SexpNull, fmt.Errorf("polar: %d unexpected arguments", len(rest))
		}

		rad := vals["angle"] * math.Pi / 180
		off := r2.Scale(vals["length"], r2.Vec{X: math.Cos(rad), Y: math.Sin(rad)})
		return &sexpHub{pos: r2.Add(from, off)}, nil
	})

	env.AddFunction("link", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("link requires exactly 2 hubs, got %d", len(args))
		}
		hubs, err := toHubs("link", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return rec.add(hubs[0], hubs[1]), nil
	})

	env.AddFunction("segment", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		c, err := toFloats("segment", args, 4)
		if err != nil {
			return zygo.SexpNull, err
		}
		return rec.add(r2.Vec{X: c[0], Y: c[1]}, r2.Vec{X: c[2], Y: c[3]}), nil
	})

	chain := func(closed bool) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			need := 2
			if closed {
				need = 3
			}
			if len(args) < need {
				return zygo.SexpNull, fmt.Errorf("%s requires at least %d hubs, got %d", name, need, len(args))
			}
			hubs, err := toHubs(name, args)
			if err != nil {
				return zygo.SexpNull, err
			}
			var last zygo.Sexp = zygo.SexpNull
			for i := 1; i < len(hubs); i++ {
				last = rec.add(hubs[i-1], hubs[i])
			}
			if closed {
				last = rec.add(hubs[len(hubs)-1], hubs[0])
			}
			return last, nil
		}
	}
	env.AddFunction("chain", chain(false))
	env.AddFunction("closed_chain", chain(true))
}
