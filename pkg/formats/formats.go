// Package formats provides parsers for arena level files.
package formats
