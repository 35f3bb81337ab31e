// Package image renders container build recipes.
//
// A Recipe is the declarative YAML description of an application image:
// base image, system packages, dependency manifest and lock file, source
// tree, working directory, environment, and entrypoint. Render produces
// the corresponding Dockerfile text deterministically, so the same recipe
// always yields a byte-identical build file.
package image
