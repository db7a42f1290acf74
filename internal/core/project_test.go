package core

import "testing"

func TestGeneratedNames(t *testing.T) {
	project := NewProject()
	a, err := NewDomain(project, "")
	if err != nil {
		t.Fatalf("new domain: %v", err)
	}
	if a.Name() != "net_01" {
		t.Fatalf("first generated name = %q", a.Name())
	}
	b, err := NewDomain(project, "")
	if err != nil {
		t.Fatalf("new domain: %v", err)
	}
	if b.Name() != "net_02" {
		t.Fatalf("second generated name = %q", b.Name())
	}
}

func TestValidateName(t *testing.T) {
	project := NewProject()
	MustDomain(project, "alpha")
	for _, bad := range []string{"", "1net", "has space", "dot.ted", "alpha"} {
		if err := project.ValidateName(bad); err == nil {
			t.Fatalf("ValidateName(%q) accepted an invalid name", bad)
		}
	}
	if err := project.ValidateName("beta_2"); err != nil {
		t.Fatalf("ValidateName(beta_2): %v", err)
	}
}

func TestProjectBackReference(t *testing.T) {
	project := NewProject()
	net := MustDomain(project, "alpha")
	if net.Project() != project {
		t.Fatal("store lost its project back-reference")
	}
	found, ok := project.Find("alpha")
	if !ok || found != net {
		t.Fatal("Find did not return the registered store")
	}
	if len(project.Objects()) != 1 {
		t.Fatalf("project holds %d objects", len(project.Objects()))
	}
	if _, ok := project.Find("missing"); ok {
		t.Fatal("Find reported a non-existent store")
	}
}

func TestFreeStandingStore(t *testing.T) {
	net, err := NewDomain(nil, "free")
	if err != nil {
		t.Fatalf("new domain: %v", err)
	}
	if net.Project() != nil {
		t.Fatal("free-standing store acquired a project")
	}
	if net.UUID() == "" {
		t.Fatal("store has no identity")
	}
}
