package cli

import (
	"bytes"
	"testing"

	"go.viam.com/test"

	"github.com/ringbot/autoseq/utils"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"plantool"}, args...))
	return out.String(), err
}

func TestPlansAction(t *testing.T) {
	out, err := runApp(t, "plans")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "unclassified plan")
	test.That(t, out, test.ShouldContainSubstring, "low plan")
	test.That(t, out, test.ShouldContainSubstring, "high plan")
	test.That(t, out, test.ShouldContainSubstring, "powershot @ 0.76")

	out, err = runApp(t, "--config", utils.ResolveFile("etc/configs/autoseq.json"), "plans", "--classification", "four")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "high plan")
	test.That(t, out, test.ShouldNotContainSubstring, "low plan")
	test.That(t, out, test.ShouldContainSubstring, "(53.00, -44.00, ")

	_, err = runApp(t, "plans", "--classification", "five")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFireAction(t *testing.T) {
	out, err := runApp(t, "fire", "--mode", "simple", "--step", "0.25")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "simple fire, 5.0s")
	test.That(t, out, test.ShouldContainSubstring, "4.75")

	out, err = runApp(t, "fire")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "powershot fire, 12.0s")

	_, err = runApp(t, "fire", "--mode", "rapid")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = runApp(t, "fire", "--step", "0")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestValidateAction(t *testing.T) {
	out, err := runApp(t, "validate")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "config defaults is valid")

	_, err = runApp(t, "--config", "/nonexistent/autoseq.json", "validate")
	test.That(t, err, test.ShouldNotBeNil)
}
