// Package platform holds the small OS-dependent filesystem helpers used when
// materializing templates: permission bits, executable detection, home
// directory expansion and same-file checks.
package platform
