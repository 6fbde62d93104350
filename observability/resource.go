package observability

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Resource attribute keys.
const (
	AttrServiceName    = "service.name"
	AttrServiceVersion = "service.version"
	AttrEnvironment    = "deployment.environment"
)

// newResource creates an OpenTelemetry resource with service metadata.
func newResource(serviceName, serviceVersion, environment string) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{attribute.String(AttrServiceName, serviceName)}
	if serviceVersion != "" {
		attrs = append(attrs, attribute.String(AttrServiceVersion, serviceVersion))
	}
	if environment != "" {
		attrs = append(attrs, attribute.String(AttrEnvironment, environment))
	}
	return resource.Merge(resource.Default(), resource.NewSchemaless(attrs...))
}
