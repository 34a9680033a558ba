// Package pathctx builds the schema-path and instance-path values that a
// generated validator threads through its definition functions.
//
// Neither path can always be a compile-time string literal: a definition or
// a hoisted container compiles to a named function that validator code calls
// from every site that references it, so the path leading up to that
// function's own body is only known at the call site, not inside the
// function. Each path is therefore built as a small expression tree —
// literal segments interleaved with the caller-supplied path-so-far and, for
// instance paths, runtime-computed segments such as an array index or an
// object key — that a backend renders into its own concatenation syntax
// ("+", "..", format!) once the whole node has been visited. A path made
// only of literal segments (IsConstant) is emitted as one plain string.
package pathctx

// Part is one segment of a path expression. A literal part is known at
// codegen time (e.g. "properties", "0"); a variable part is the name of a
// target-language expression that yields a string at runtime (e.g. the
// path-so-far parameter, a loop index converted to a string, or an object
// key variable).
type Part struct {
	Literal   string
	Var       string
	IsLiteral bool
}

// Path is an ordered sequence of Parts, read left to right.
type Path struct {
	Parts []Part
}

// FromVar starts a path at a runtime expression, typically a function
// parameter holding the path passed in by the call site.
func FromVar(expr string) Path {
	return Path{Parts: []Part{{Var: expr}}}
}

// AppendLiteral returns a new Path with a literal segment appended, merging
// it into the previous part when that part is also literal so a chain of
// pushes like Root then /properties then /name collapses into one literal
// run instead of three.
func (p Path) AppendLiteral(segment string) Path {
	out := make([]Part, len(p.Parts))
	copy(out, p.Parts)
	if n := len(out); n > 0 && out[n-1].IsLiteral {
		out[n-1].Literal += "/" + segment
		return Path{Parts: out}
	}
	return Path{Parts: append(out, Part{IsLiteral: true, Literal: "/" + segment})}
}

// AppendVar returns a new Path with a runtime-computed segment appended. The
// caller is responsible for expr yielding the segment's text (including any
// numeric-to-string conversion the target language needs); pathctx only
// tracks where a "/" separator belongs.
func (p Path) AppendVar(expr string) Path {
	out := make([]Part, len(p.Parts))
	copy(out, p.Parts)
	if n := len(out); n > 0 && out[n-1].IsLiteral {
		out[n-1].Literal += "/"
	} else {
		out = append(out, Part{IsLiteral: true, Literal: "/"})
	}
	out = append(out, Part{Var: expr})
	return Path{Parts: out}
}

// Render turns the path into a single target-language expression string.
// join concatenates two already-rendered expressions (e.g. "a + b", "a..b");
// quote renders a literal Go string as a target-language string literal.
func (p Path) Render(quote func(string) string, join func(a, b string) string) string {
	if len(p.Parts) == 0 {
		return quote("")
	}
	expr := p.partExpr(p.Parts[0], quote)
	for _, part := range p.Parts[1:] {
		expr = join(expr, p.partExpr(part, quote))
	}
	return expr
}

func (p Path) partExpr(part Part, quote func(string) string) string {
	if part.IsLiteral {
		return quote(part.Literal)
	}
	return part.Var
}

// IsConstant reports whether every part of the path is a literal, meaning
// the whole path is known at codegen time and can be inlined as a plain
// string rather than threaded through a join chain.
func (p Path) IsConstant() bool {
	for _, part := range p.Parts {
		if !part.IsLiteral {
			return false
		}
	}
	return true
}

// Constant renders a fully-literal path directly, without a join callback.
// Panics if IsConstant is false; callers should check first.
func (p Path) Constant() string {
	s := ""
	for _, part := range p.Parts {
		if !part.IsLiteral {
			panic("pathctx: Constant called on a path with a variable part")
		}
		s += part.Literal
	}
	return s
}
