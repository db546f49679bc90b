// Package logger wraps zap with a global sugared logger writing to stderr,
// context helpers (ToContext/FromContext/WithName/WithKV) and level parsing.
//
// Components accept a context and log through the logger it carries.
package logger
