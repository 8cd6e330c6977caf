package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autoseq.log")
	logger, closer := NewFileLogger("autoseq", INFO, path)

	logger.Debugw("hidden")
	logger.Sublogger("fire").Infow("fired", "power", 0.76)
	test.That(t, closer.Close(), test.ShouldBeNil)

	raw, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	test.That(t, lines, test.ShouldHaveLength, 1)

	var entry map[string]interface{}
	test.That(t, json.Unmarshal([]byte(lines[0]), &entry), test.ShouldBeNil)
	test.That(t, entry["msg"], test.ShouldEqual, "fired")
	test.That(t, entry["logger"], test.ShouldEqual, "autoseq.fire")
	test.That(t, entry["level"], test.ShouldEqual, "INFO")
	test.That(t, entry["power"], test.ShouldEqual, 0.76)
}
