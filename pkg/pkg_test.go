package pkg

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "ecnf" {
		t.Errorf("Name = %q, want %q", Name, "ecnf")
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("read VERSION: %v", err)
	}

	if want := strings.TrimSpace(string(buf)); Version != want {
		t.Errorf("Version = %q, want %q", Version, want)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("Author = %v, missing ardnew", Author)
	}
}

func TestUserDir(t *testing.T) {
	base := func() (string, error) { return "/base", nil }
	if got, want := userDir(base, ".x"), filepath.Join("/base", Prefix()); got != want {
		t.Errorf("userDir = %q, want %q", got, want)
	}

	failing := func() (string, error) { return "", errors.New("unset") }
	t.Setenv("HOME", "/home/tester")

	if got, want := userDir(failing, ".cache"), filepath.Join("/home/tester", ".cache", Prefix()); got != want {
		t.Errorf("userDir fallback = %q, want %q", got, want)
	}
}

func TestError_Chain(t *testing.T) {
	err := ErrCreateDir.Wrap(fs.ErrPermission)

	if got, want := err.Error(), "create directory: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !errors.Is(err, ErrCreateDir) {
		t.Error("wrapped error does not match its sentinel")
	}

	if !errors.Is(err, fs.ErrPermission) {
		t.Error("wrapped error does not match its cause")
	}

	if errors.Is(MakeErrorf("create directory"), ErrCreateDir) {
		t.Error("distinct sentinel with the same text matched")
	}

	if len(ErrCreateDir) != 1 {
		t.Error("Wrap modified the sentinel")
	}
}
