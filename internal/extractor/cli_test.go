package extractor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestNewCLIRequiresSDKPath(t *testing.T) {
	if _, err := NewCLI(""); err == nil {
		t.Fatal("expected error for empty extractor path")
	}
}

func TestNewCLIWithBinary(t *testing.T) {
	cli, err := NewCLI("/opt/vendor/extractor", WithBinary("/usr/local/bin/sapling"))
	if err != nil {
		t.Fatalf("NewCLI: %v", err)
	}
	if cli.binary != "/usr/local/bin/sapling" {
		t.Fatalf("expected binary override, got %q", cli.binary)
	}
}

func TestParseAssetRequiresPath(t *testing.T) {
	cli, err := NewCLI("/opt/vendor/extractor")
	if err != nil {
		t.Fatalf("NewCLI: %v", err)
	}
	if _, err := cli.ParseAsset(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty asset path")
	}
}

func stubWorker(t *testing.T, mode string, capture *[]string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if capture != nil {
			*capture = append([]string(nil), args...)
		}
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestWorkerHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "SAPLING_HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestParseAssetDecodesRecord(t *testing.T) {
	var args []string
	stubWorker(t, "record", &args)

	cli, err := NewCLI("/opt/vendor/extractor", WithLogLevel("debug"))
	if err != nil {
		t.Fatalf("NewCLI: %v", err)
	}
	rec, err := cli.ParseAsset(context.Background(), "/assets/acer/acer.lbw.gz")
	if err != nil {
		t.Fatalf("ParseAsset: %v", err)
	}
	if rec.Model.Name != "Acer campestre" {
		t.Fatalf("unexpected model: %#v", rec.Model)
	}
	if rec.Labels["Acer campestre"]["en"] != "Field Maple" {
		t.Fatalf("unexpected labels: %#v", rec.Labels)
	}

	joined := strings.Join(args, " ")
	for _, want := range []string{"parse-asset", "--file /assets/acer/acer.lbw.gz", "--sdk /opt/vendor/extractor", "--log-level debug"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("worker args missing %q: %v", want, args)
		}
	}
}

func TestParseAssetEmptyOutputFails(t *testing.T) {
	stubWorker(t, "empty", nil)

	cli, err := NewCLI("/opt/vendor/extractor")
	if err != nil {
		t.Fatalf("NewCLI: %v", err)
	}
	if _, err := cli.ParseAsset(context.Background(), "/assets/a.lbw.gz"); err == nil {
		t.Fatal("expected error for empty worker output")
	}
}

func TestParseAssetMalformedOutputFails(t *testing.T) {
	stubWorker(t, "garbage", nil)

	cli, err := NewCLI("/opt/vendor/extractor")
	if err != nil {
		t.Fatalf("NewCLI: %v", err)
	}
	if _, err := cli.ParseAsset(context.Background(), "/assets/a.lbw.gz"); err == nil {
		t.Fatal("expected error for malformed worker output")
	}
}

func TestParseAssetWorkerFailureFails(t *testing.T) {
	stubWorker(t, "fail", nil)

	cli, err := NewCLI("/opt/vendor/extractor")
	if err != nil {
		t.Fatalf("NewCLI: %v", err)
	}
	if _, err := cli.ParseAsset(context.Background(), "/assets/a.lbw.gz"); err == nil {
		t.Fatal("expected error for non-zero worker exit")
	}
}

// TestWorkerHelperProcess is not a real test; it stands in for a worker
// subprocess when launched by stubWorker.
func TestWorkerHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("SAPLING_HELPER_MODE") {
	case "record":
		fmt.Println(`{"model": {"name": "Acer campestre", "filepath": "/assets/acer/acer.lbw.gz", "md5": "0123", "default_variant": "Young", "preview": "", "variants": {"Young": {"index": 0, "seasons": ["Summer"], "default_season": "Summer", "preview": ""}}}, "labels": {"Acer campestre": {"en": "Field Maple"}}}`)
	case "empty":
	case "garbage":
		fmt.Println("vendor diagnostics: loading toolkit")
	case "fail":
		fmt.Fprintln(os.Stderr, "worker exploded")
		os.Exit(3)
	}
	os.Exit(0)
}
