package ssh

import (
	"reflect"
	"testing"
)

func TestTunnelArgs(t *testing.T) {
	got := TunnelArgs("/home/dev/.ssh/id_rsa", "dev", "bastion.example.com", []string{"5432:localhost:5432", " ", "6379:cache:6379"})
	want := []string{
		"-N", "-o", "ExitOnForwardFailure=yes",
		"-i", "/home/dev/.ssh/id_rsa",
		"-L", "5432:localhost:5432",
		"-L", "6379:cache:6379",
		"dev@bastion.example.com",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TunnelArgs:\n got %v\nwant %v", got, want)
	}
}

func TestTarget(t *testing.T) {
	cases := map[[2]string]string{
		{"dev", "host"}:     "dev@host",
		{"", "host"}:        "host",
		{"dev", "ops@host"}: "ops@host",
		{" dev ", " host "}: "dev@host",
	}
	for in, want := range cases {
		if got := Target(in[0], in[1]); got != want {
			t.Fatalf("Target(%q, %q) = %q, want %q", in[0], in[1], got, want)
		}
	}
}

func TestKeyPath(t *testing.T) {
	if got := KeyPath("/keys", "id_ed25519"); got != "/keys/id_ed25519" {
		t.Fatalf("KeyPath: got %q", got)
	}
}
