package schema

// Federation directive names, as observed via HasAppliedDirective /
// AppliedDirectives on types and fields. This package does not define
// the directives themselves (that belongs to a concrete schema
// library, e.g. schema/gqlgraph); it only names the vocabulary the
// query graph core looks for.
const (
	KeyDirectiveName       = "key"
	RequiresDirectiveName  = "requires"
	ProvidesDirectiveName  = "provides"
	ExternalDirectiveName  = "external"
	ShareableDirectiveName = "shareable"
)

// AppliedDirective is one use of a directive on a type or field, e.g.
// `@key(fields: "id")`.
type AppliedDirective interface {
	Name() string

	// Arguments returns the directive's argument values by name. The
	// concrete value types mirror the directive's declared argument
	// types (string, bool, list, ...).
	Arguments() map[string]any

	// StringArg is a convenience accessor for a string-typed argument,
	// returning "" if absent or not a string.
	StringArg(name string) string

	// BoolArg is a convenience accessor for a bool-typed argument,
	// returning def if the argument is absent.
	BoolArg(name string, def bool) bool
}

// AppliedDirectivesOf is a free-function form of NamedType / Field's
// AppliedDirectives method, useful when only the narrower interface
// implementing HasAppliedDirective/AppliedDirectives is known.
func AppliedDirectivesOf(holder interface {
	AppliedDirectives(name string) []AppliedDirective
}, directiveName string) []AppliedDirective {
	return holder.AppliedDirectives(directiveName)
}
