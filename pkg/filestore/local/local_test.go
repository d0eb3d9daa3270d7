package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadDownload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "store", "nested"), false)
	if err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(src, []byte("id,title\n1,night\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := s.Upload(ctx, src, "prompts.csv"); err != nil {
		t.Fatalf("Upload() = %v", err)
	}
	dst := filepath.Join(dir, "out.csv")
	if err := s.Download(ctx, dst, "prompts.csv"); err != nil {
		t.Fatalf("Download() = %v", err)
	}
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "id,title\n1,night\n" {
		t.Fatalf("Download() wrote %q", b)
	}
	u, err := s.URL(ctx, "prompts.csv")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(u, "file://") || !strings.HasSuffix(u, "prompts.csv") {
		t.Fatalf("URL() = %q", u)
	}
	if err := s.Download(ctx, dst, "missing.csv"); err == nil {
		t.Fatal("Download(missing) = nil; want error")
	}
}
