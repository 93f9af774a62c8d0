// Package validation checks live text against the limits and requirements
// configured on template elements.
//
// Two rules exist. Text elements configured with a "limit" report how many
// characters remain or exceed it. Elements configured with a "min" are
// required fields: the validation pattern of their template must match, at
// least min times when min is above one.
package validation
