package optim_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOptim(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Optim Suite")
}
