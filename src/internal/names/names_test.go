package names

import "testing"

func TestSurname(t *testing.T) {
    cases := map[string]string{
        "Doe, Jane Q":      "Doe",
        "  van Dyke , J.":  "van Dyke",
        "Jane Quimby Doe":  "Doe",
        "Plato":            "Plato",
        "":                 "",
        "   ":              "",
        ", Anonymous":      "",
    }
    for in, want := range cases {
        if got := Surname(in); got != want {
            t.Fatalf("Surname(%q): want %q, got %q", in, want, got)
        }
    }
}

func TestToken(t *testing.T) {
    if got := Token("van Dyke"); got != "vanDyke" {
        t.Fatalf("Token space: got %q", got)
    }
    if got := Token("O'Brien-Smith"); got != "OBrien-Smith" {
        t.Fatalf("Token punct: got %q", got)
    }
    if got := Token("Müller2"); got != "Mller2" {
        t.Fatalf("Token non-ascii: got %q", got)
    }
}
