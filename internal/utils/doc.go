// Package utils provides terminal and stdin helpers shared by the CLI.
package utils
