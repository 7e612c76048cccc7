// Package main provides a Dagger module for testing, building and deploying Pintwise.
//
// The module is designed to be used with the Dagger CLI or SDKs to automate
// build and deployment workflows.
package main

import (
	"context"
	"dagger/pintwise/internal/dagger"
	"fmt"
	"strings"
)

const goImage = "golang:1.24.2-alpine"

// binaries are the commands shipped in the container image.
var binaries = []string{"api", "db", "export"}

type Pintwise struct{}

// goContainer returns a Go toolchain container with the source mounted and module caches attached.
func goContainer(src *dagger.Directory) *dagger.Container {
	return dag.Container().
		From(goImage).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithDirectory("/src", src).
		WithWorkdir("/src")
}

// Test runs the unit tests with the race detector.
func (m *Pintwise) Test(
	ctx context.Context,
	// Source code directory
	// +required
	src *dagger.Directory,
) (string, error) {
	// The race detector needs cgo
	return goContainer(src).
		WithExec([]string{"apk", "add", "--no-cache", "build-base"}).
		WithEnvVariable("CGO_ENABLED", "1").
		WithExec([]string{"go", "test", "-race", "./..."}).
		Stdout(ctx)
}

// BuildContainer creates a container image for the project.
func (m *Pintwise) BuildContainer(
	ctx context.Context,
	// Source code directory
	// +required
	src *dagger.Directory,
	// Platform to build for
	// +optional
	// +default="linux/amd64"
	platform *dagger.Platform,
) (*dagger.Container, error) {
	// Use default platform if none specified
	buildPlatform := dagger.Platform("linux/amd64")
	if platform != nil {
		buildPlatform = *platform
	}

	// Get architecture using containerd utility
	platformArch, err := dag.Containerd().ArchitectureOf(ctx, buildPlatform)
	if err != nil {
		return nil, fmt.Errorf("failed to get architecture: %w", err)
	}

	// Create build container
	buildCtr := goContainer(src).
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("GOOS", "linux").
		WithEnvVariable("GOARCH", platformArch)

	// Install build dependencies
	buildCtr = buildCtr.WithExec([]string{"apk", "add", "--no-cache", "upx", "ca-certificates"})

	// Create necessary directories
	buildCtr = buildCtr.
		WithExec([]string{"mkdir", "-p", "/src/bin"}).
		WithExec([]string{"mkdir", "-p", "/src/logs"})

	// Build and compress binaries
	for _, binary := range binaries {
		buildCtr = buildCtr.
			WithExec([]string{"go", "build", "-ldflags=-s -w", "-o", "/src/bin/" + binary, "./cmd/" + binary}).
			WithExec([]string{"upx", "--best", "--lzma", "/src/bin/" + binary})
	}

	// Create final container
	return dag.Container(dagger.ContainerOpts{Platform: buildPlatform}).
		From("gcr.io/distroless/static-debian12:latest").
		WithDirectory("/app/bin", buildCtr.Directory("/src/bin")).
		WithDirectory("/app/logs", buildCtr.Directory("/src/logs")).
		WithFile("/etc/ssl/certs/ca-certificates.crt", buildCtr.File("/etc/ssl/certs/ca-certificates.crt")).
		WithWorkdir("/app").
		WithExposedPort(8080).
		WithEntrypoint([]string{"/app/bin/api"}), nil
}

// Publish the application container after testing and building it.
func (m *Pintwise) Publish(
	ctx context.Context,
	// Source code directory
	// +required
	src *dagger.Directory,
	// Docker image name (e.g. "username/repo:tag")
	// +required
	imageName string,
	// Platforms to build for (comma-separated, e.g. "linux/amd64,linux/arm64")
	// +optional
	// +default="linux/amd64"
	platforms string,
) (string, error) {
	if _, err := m.Test(ctx, src); err != nil {
		return "", fmt.Errorf("tests failed: %w", err)
	}

	// Parse platforms string
	var platformList []dagger.Platform
	if platforms == "" {
		platformList = []dagger.Platform{"linux/amd64"}
	} else {
		for _, p := range strings.Split(platforms, ",") {
			platformList = append(platformList, dagger.Platform(strings.TrimSpace(p)))
		}
	}

	// Build containers for each platform
	platformVariants := make([]*dagger.Container, 0, len(platformList))
	for _, platform := range platformList {
		container, err := m.BuildContainer(ctx, src, &platform)
		if err != nil {
			return "", fmt.Errorf("failed to build container for %s: %w", platform, err)
		}
		platformVariants = append(platformVariants, container)
	}

	// Publish multi-arch image
	ref, err := dag.Container().Publish(ctx, imageName, dagger.ContainerPublishOpts{
		PlatformVariants: platformVariants,
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish image: %w", err)
	}

	return ref, nil
}

// Run a command with the given config files.
func (m *Pintwise) Run(
	ctx context.Context,
	// Source code directory
	// +required
	src *dagger.Directory,
	// Config directory path
	// +required
	configDir *dagger.Directory,
	// Command to run: "api", "db" or "export"
	// +required
	cmd string,
	// Arguments passed to the command (e.g. "migrate" or "--format,csv")
	// +optional
	args []string,
) (*dagger.Container, error) {
	if !isBinary(cmd) {
		return nil, fmt.Errorf("unknown command %q", cmd)
	}

	// Build the program
	runCtr := goContainer(src).
		WithDirectory("/etc/pintwise/config", configDir).
		WithEnvVariable("CGO_ENABLED", "0").
		WithExec([]string{"apk", "add", "--no-cache", "ca-certificates"}).
		WithExec([]string{"go", "build", "-o", "/src/bin/" + cmd, "./cmd/" + cmd})

	return runCtr.WithExec(append([]string{"/src/bin/" + cmd}, args...)), nil
}

func isBinary(cmd string) bool {
	for _, binary := range binaries {
		if binary == cmd {
			return true
		}
	}
	return false
}
