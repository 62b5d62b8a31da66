package transform

import "testing"

func TestShout(t *testing.T) {
	if got := Shout("the fox runs."); got != "THE FOX RUNS." {
		t.Errorf("got %q", got)
	}
}

func TestMock(t *testing.T) {
	if got := Mock("the fox runs."); got != "tHe FoX rUnS." {
		t.Errorf("got %q", got)
	}
}

func TestLeet(t *testing.T) {
	if got := Leet("The elite toast."); got != "7h3 3l173 70457." {
		t.Errorf("got %q", got)
	}
}

func TestReverse(t *testing.T) {
	cases := map[string]string{
		"The fox runs.": "Eht xof snur.",
		"Oh, it glows!": "Ho, ti swolg!",
		"level":         "level",
	}
	for in, want := range cases {
		if got := Reverse(in); got != want {
			t.Errorf("Reverse(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPigLatin(t *testing.T) {
	cases := map[string]string{
		"The fox runs.": "Ethay oxfay unsray.",
		"An owl asks?":  "Anway owlway asksway?",
		"String theory": "Ingstray eorythay",
	}
	for in, want := range cases {
		if got := PigLatin(in); got != want {
			t.Errorf("PigLatin(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	want := []string{"leet", "mock", "piglatin", "reverse", "shout"}
	got := r.Names()
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestPipelineOrder(t *testing.T) {
	r := NewRegistry()
	p, err := r.NewPipeline([]string{"piglatin", "shout"})
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Apply("the fox"); got != "ETHAY OXFAY" {
		t.Errorf("got %q", got)
	}
}

func TestPipelineUnknownName(t *testing.T) {
	r := NewRegistry()
	if _, err := r.NewPipeline([]string{"shout", "zalgo"}); err == nil {
		t.Fatal("expected error for unknown transform")
	}
}

func TestEmptyPipelineIsIdentity(t *testing.T) {
	r := NewRegistry()
	p, err := r.NewPipeline(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Apply("unchanged"); got != "unchanged" {
		t.Errorf("got %q", got)
	}
}

func TestCustomRegistration(t *testing.T) {
	r := NewRegistry()
	r.Register("noop", func(s string) string { return s })
	if _, ok := r.Get("noop"); !ok {
		t.Fatal("custom transform not registered")
	}
}
