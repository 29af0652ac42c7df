// Package cli constructs the ghops command-line interface, wiring the Cobra
// command hierarchy, configuration loader, credential resolution, and
// structured logging primitives. It exposes helpers to build reusable
// application instances and to execute the default command set.
package cli
