package browser

import (
	"reflect"
	"testing"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://www.theguardian.com/science/2020/may/01/x", false},
		{"http://example.com", false},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"ftp://example.com", true},
		{"https://", true},
		{"", true},
	}
	for _, tt := range tests {
		err := check(tt.url)
		if tt.wantErr && err == nil {
			t.Errorf("check(%q): expected error, got nil", tt.url)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("check(%q): unexpected error: %v", tt.url, err)
		}
	}
}

func TestOpenRejectsNonHTTP(t *testing.T) {
	if err := Open("file:///etc/passwd"); err == nil {
		t.Error("Open(file://): expected error")
	}
}

func TestCommand(t *testing.T) {
	const u = "https://example.com/a"
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"darwin", "open", []string{u}},
		{"linux", "xdg-open", []string{u}},
		{"freebsd", "xdg-open", []string{u}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", u}},
	}
	for _, tt := range tests {
		name, args := command(tt.goos, u)
		if name != tt.name || !reflect.DeepEqual(args, tt.args) {
			t.Errorf("command(%q) = %s %v, want %s %v", tt.goos, name, args, tt.name, tt.args)
		}
	}
}
