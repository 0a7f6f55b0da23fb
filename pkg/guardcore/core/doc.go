// Package core performs single HTTP round trips against a guardcore server,
// classifies failures into a small set of error kinds, and decodes success
// bodies into typed values with schema checks.
package core
