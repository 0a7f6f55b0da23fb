// Package types holds the request and response shapes exchanged with a
// guardcore server. Response shapes are decoded with core.Decode: every
// non-pointer field must be present and tagged constraints must hold.
package types
