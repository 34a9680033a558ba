// Package jtdgen compiles RFC 8927 JSON Type Definition schemas into
// standalone validator source code for one of several target languages.
// Compile decodes schema JSON and turns it into an AST; Emit walks that AST
// and renders it in the chosen Target; Generate does both in one call. None
// of them executes the schema against an instance — that is the generated
// validator's job.
package jtdgen
