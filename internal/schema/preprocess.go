package schema

import (
	"regexp"
)

// rpcDirectiveRegex matches @rpc(...) at the start of a line.
// Nested parentheses one level deep are tolerated inside the argument list.
var rpcDirectiveRegex = regexp.MustCompile(`(?m)^@rpc\s*\(((?:[^()]*|\([^)]*\))*)\)`)

// serviceStartRegex matches service declarations at the start of a line.
var serviceStartRegex = regexp.MustCompile(`(?m)^service\s+(\w+)\s*{`)

// exceptionStartRegex matches exception declarations at the start of a line.
var exceptionStartRegex = regexp.MustCompile(`(?m)^exception\s+(\w+)\s*{`)

const (
	metaTypeName     = "_Schema"
	servicePrefix    = "Service_"
	exceptionPrefix  = "Exception_"
	rpcDirectiveName = "rpc"
)

// PreprocessGraphQL rewrites `@rpc(...)`, `service` and `exception` blocks into valid GraphQL `type` definitions.
func PreprocessGraphQL(input string) string {
	// The metadata field needs a type to be valid GraphQL
	input = rpcDirectiveRegex.ReplaceAllStringFunc(input, func(match string) string {
		args := rpcDirectiveRegex.FindStringSubmatch(match)[1]
		return `type ` + metaTypeName + ` {
  _: String @` + rpcDirectiveName + `(` + args + `)
}`
	})

	input = serviceStartRegex.ReplaceAllStringFunc(input, func(match string) string {
		serviceName := serviceStartRegex.FindStringSubmatch(match)[1]
		return `type ` + servicePrefix + serviceName + ` {`
	})

	input = exceptionStartRegex.ReplaceAllStringFunc(input, func(match string) string {
		excName := exceptionStartRegex.FindStringSubmatch(match)[1]
		return `type ` + exceptionPrefix + excName + ` {`
	})

	return input
}
