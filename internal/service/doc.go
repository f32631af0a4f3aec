// Package service contains the application use cases. It coordinates the
// domain types, the generation gateway and the stores defined in
// internal/store to fulfil requests from the API layer.
//
// Services receive their dependencies through constructor injection and
// depend only on interfaces, never on a concrete database or vendor SDK.
// Expected conditions are reported as sentinel errors from the domain,
// store and generation packages, passed through unchanged so the API layer
// can map them with errors.Is. Unexpected failures are wrapped in
// service-specific error types naming the failed operation.
package service
