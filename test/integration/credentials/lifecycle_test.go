// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

//go:build integration

package credentials_test

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/tinyapp/tinyapp/internal/config"
	"github.com/tinyapp/tinyapp/internal/credentials"
	"github.com/tinyapp/tinyapp/internal/logging"
)

var _ = Describe("Credentials lifecycle", func() {
	var policy *credentials.Policy

	BeforeEach(func() {
		path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
		Expect(os.WriteFile(path, []byte(`
log:
  format: json
password:
  min_length: 10
  require_symbol: true
  denylist: ["*tinyapp*"]
`), 0o600)).To(Succeed())

		cfg, err := config.Load(path, nil)
		Expect(err).NotTo(HaveOccurred())
		policy, err = cfg.Policy()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("creating credentials", func() {
		It("accepts values that satisfy the configured policy", func() {
			c, err := policy.New("Alice", "Secr3tive!")
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Username()).To(Equal("Alice"))
			Expect(c.Password()).To(Equal("Secr3tive!"))
		})

		It("rejects passwords the default policy would accept", func() {
			_, err := policy.New("Alice", "Secr3tive")
			Expect(err).To(HaveOccurred())
			field, ok := credentials.FieldOf(err)
			Expect(ok).To(BeTrue())
			Expect(field).To(Equal(credentials.FieldPassword))
		})

		It("uses the configured denylist instead of the default", func() {
			_, err := policy.New("Alice", "MyPassword1!")
			Expect(err).NotTo(HaveOccurred())

			_, err = policy.New("Alice", "Tinyapp123!")
			Expect(err).To(MatchError(ContainSubstring("denied pattern")))
		})

		It("reports the username before the password", func() {
			_, err := policy.New("alice", "")
			field, _ := credentials.FieldOf(err)
			Expect(field).To(Equal(credentials.FieldUsername))
		})
	})

	Describe("mutating credentials", func() {
		var c *credentials.Credentials

		BeforeEach(func() {
			var err error
			c, err = policy.New("Alice", "Secr3tive!")
			Expect(err).NotTo(HaveOccurred())
		})

		It("keeps the policy it was created under", func() {
			Expect(c.SetPassword("Secr3tive")).NotTo(Succeed())
			Expect(c.Password()).To(Equal("Secr3tive!"))
		})

		It("never exposes an invalid username to concurrent readers", func() {
			var wg sync.WaitGroup
			stop := make(chan struct{})
			bad := make(chan string, 1)

			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()
				for {
					select {
					case <-stop:
						return
					default:
					}
					if u := c.Username(); !credentials.IsUsernameValid(u) {
						select {
						case bad <- u:
						default:
						}
					}
				}
			}()

			for i := 0; i < 500; i++ {
				_ = c.SetUsername([]string{"Bobby", "x", "Carol", "carol"}[i%4])
			}
			close(stop)
			wg.Wait()

			Expect(bad).To(BeEmpty())
		})
	})

	Describe("logging credentials", func() {
		It("writes the username and never the password", func() {
			c, err := policy.New("Alice", "Secr3tive!")
			Expect(err).NotTo(HaveOccurred())

			var buf bytes.Buffer
			logger := logging.Setup("tinyapp", "test", "json", &buf)
			logger.Info("created", "credentials", c, "password", c.Password())

			Expect(buf.String()).To(ContainSubstring(`"username":"Alice"`))
			Expect(buf.String()).NotTo(ContainSubstring("Secr3tive!"))
			Expect(buf.String()).To(ContainSubstring(logging.Redacted))
		})
	})
})
