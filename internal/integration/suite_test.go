//go:build integration

// Package integration runs end-to-end request scenarios against a real
// Postgres instance via a disposable container. Skipped unless the
// "integration" build tag is set and Docker is available.
package integration

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Conference core integration suite")
}
