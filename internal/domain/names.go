package domain

import "strings"

// ValidateProjectName rejects names that cannot serve as item identifiers:
// empty strings and names containing path separators.
func ValidateProjectName(projectName string) error {
	if projectName == "" {
		return E(CodeInvalidArgument, "", "empty project name", ErrInvalidProjectName)
	}
	if strings.ContainsAny(projectName, "/\\") {
		return E(CodeInvalidArgument, "", "project name "+projectName+" contains a path separator", ErrInvalidProjectName)
	}
	return nil
}
