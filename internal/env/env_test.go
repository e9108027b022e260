package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, ".env")
	local := filepath.Join(dir, ".env.local")
	if err := os.WriteFile(base, []byte("# comment\nMILANFOOD_T_A=base\nexport MILANFOOD_T_B=\"quoted value\"\nMILANFOOD_T_C=base\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(local, []byte("MILANFOOD_T_A=local\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MILANFOOD_T_C", "process")
	for _, k := range []string{"MILANFOOD_T_A", "MILANFOOD_T_B"} {
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}

	Load(base, filepath.Join(dir, "missing"), local, "")

	if v := os.Getenv("MILANFOOD_T_A"); v != "local" {
		t.Fatalf("A=%q", v)
	}
	if v := os.Getenv("MILANFOOD_T_B"); v != "quoted value" {
		t.Fatalf("B=%q", v)
	}
	if v := os.Getenv("MILANFOOD_T_C"); v != "process" {
		t.Fatalf("C=%q", v)
	}
}
