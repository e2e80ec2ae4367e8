// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

//go:build integration

package credentials_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
)

func TestCredentials(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Credentials Integration Suite")
}
