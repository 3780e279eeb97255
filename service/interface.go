package service

// Service is the lifecycle of an application-shell subsystem
// The editor core never owns services; the shell builds them and hands the
// resulting values (screen, sink, bell) to the components that need them
//
// Lifecycle:
//  1. Construction
//  2. Init(args...) - configuration from flags and config file
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	// Init configures the service from optional args
	Init(args ...any) error

	// Start begins service operation
	Start() error

	// Stop halts the service, must be safe to call multiple times
	Stop() error
}
