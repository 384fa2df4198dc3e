// Package constants holds values shared by several packages.
package constants
