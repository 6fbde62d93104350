// Package errors provides the structured error type shared by lazykit
// packages. Each AppError carries a machine-readable code, a message,
// optional details and the underlying cause.
//
// Failures raised by user callables are never converted into an AppError;
// combinators return them unchanged so errors.Is and identity checks keep
// working. AppError is reserved for conditions lazykit itself detects:
// rejected arguments, resume misuse, empty reductions and open circuits.
package errors
