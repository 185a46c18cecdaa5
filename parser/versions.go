package parser

import (
	"fmt"

	version "github.com/hashicorp/go-version"
)

// supportedVersions is the range of "openapi" values the model understands.
var supportedVersions = version.MustConstraints(version.NewConstraint(">= 3.0, < 4.0"))

// checkVersion returns warnings for documents outside the supported range.
// Loading continues either way; clientdocs does not validate documents.
func checkVersion(doc *Document) []string {
	if doc.Swagger != "" {
		return []string{fmt.Sprintf("swagger %s documents are not supported; operations and schemas may be missing", doc.Swagger)}
	}
	if doc.OpenAPI == "" {
		return []string{"missing openapi version field"}
	}
	v, err := version.NewVersion(doc.OpenAPI)
	if err != nil {
		return []string{fmt.Sprintf("unrecognized openapi version %q", doc.OpenAPI)}
	}
	if !supportedVersions.Check(v) {
		return []string{fmt.Sprintf("openapi version %s is outside the supported range %s", v.Original(), supportedVersions)}
	}
	return nil
}
