package vendorapi

import (
	"testing"

	"github.com/harborline/sso-migrate/internal/domain"
)

func TestProjectInvites(t *testing.T) {
	t.Parallel()

	m := domain.Member{
		Subject: "sub-1",
		Projects: map[domain.ProjectID]domain.ProjectRoles{
			"plain":  {Roles: []string{"viewer"}},
			"custom": {Roles: []string{"editor"}, CustomPermissions: []string{"deploy", "billing"}},
		},
	}
	got := ProjectInvites(m)
	if len(got) != 2 {
		t.Fatalf("len=%d", len(got))
	}
	byID := map[domain.ProjectID]ProjectInvite{}
	for _, pi := range got {
		byID[pi.ProjectID] = pi
	}
	if pi := byID["plain"]; pi.UseCustom || len(pi.Permissions) != 0 {
		t.Fatalf("plain=%+v", pi)
	}
	if pi := byID["custom"]; !pi.UseCustom || len(pi.Permissions) != 2 {
		t.Fatalf("custom=%+v", pi)
	}
}

func TestProjectInvites_EmptyProjects(t *testing.T) {
	t.Parallel()

	got := ProjectInvites(domain.Member{Subject: "sub-1"})
	if got == nil || len(got) != 0 {
		t.Fatalf("got=%v, want empty non-nil list", got)
	}
}

func TestResult_OK(t *testing.T) {
	t.Parallel()

	for status, want := range map[int]bool{
		200: true, 201: true, 302: true, 399: true,
		199: false, 400: false, 403: false, 500: false,
	} {
		if got := (Result{Status: status}).OK(); got != want {
			t.Fatalf("OK(%d)=%v, want %v", status, got, want)
		}
	}
}
