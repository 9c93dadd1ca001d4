// Factboard CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
// It is the main harness for handling nearly all dev operations.
package main

import (
	"context"

	"dagger/factboard/internal/dagger"
)

// Factboard is the main module for the factboard CI/CD pipeline
type Factboard struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Factboard CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", ".devenv", "build", "tmp", ".factboard"]
	source *dagger.Directory,
) *Factboard {
	return &Factboard{
		Source: source,
	}
}

// goContainer returns a Go container with the project source mounted.
// factboard has no cgo dependencies, so CGO stays disabled.
//
// It is the shared foundation for tests and builds.
func (f *Factboard) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-alpine").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", f.Source)
}

// Test runs the factboard unit tests via "go test"
func (f *Factboard) Test(ctx context.Context) (string, error) {
	return f.goContainer().
		WithExec([]string{"go", "test", "-v", "./..."}).
		Stdout(ctx)
}
