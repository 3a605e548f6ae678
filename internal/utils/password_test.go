package utils

import "testing"

func TestRosterPassword(t *testing.T) {
	cases := []struct {
		name, roll, want string
	}{
		{"Anita Desai", "2021CS001", "Anit01"},
		{"Bo", "2021CS002", "Bo02"},
		{"Anita Desai", "7", "Anit7"},
		{"", "", ""},
	}
	for _, c := range cases {
		if got := RosterPassword(c.name, c.roll); got != c.want {
			t.Errorf("RosterPassword(%q, %q) = %q, want %q", c.name, c.roll, got, c.want)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := CheckPassword(hash, "s3cret"); err != nil {
		t.Fatal("correct password rejected")
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("wrong password accepted")
	}
}
