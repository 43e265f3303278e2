// Package naming provides shared string case conversion utilities.
//
// These are registered as template functions for merge.Options.RenameTemplate
// (pascalCase, camelCase, snakeCase, kebabCase), letting operators spell a
// custom collision-rename template without reimplementing case conversion.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
