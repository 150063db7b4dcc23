package models

import "testing"

func TestDisplayName(t *testing.T) {
	t.Run("registered user", func(t *testing.T) {
		u := &User{Registration: &RegistrationDetails{FirstName: "Alex", LastName: "Kim"}}
		if got := u.DisplayName(); got != "Alex Kim" {
			t.Errorf("expected Alex Kim, got %q", got)
		}
	})

	t.Run("unregistered user falls back to placeholder", func(t *testing.T) {
		u := &User{}
		if got := u.DisplayName(); got != "Participant" {
			t.Errorf("expected Participant, got %q", got)
		}
	})
}

func TestIsMinor(t *testing.T) {
	cases := []struct {
		name string
		user User
		want bool
	}{
		{"high school student", User{Registration: &RegistrationDetails{IsHighSchoolStudent: true}}, true},
		{"adult", User{Registration: &RegistrationDetails{}}, false},
		{"unregistered", User{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.IsMinor(); got != tc.want {
				t.Errorf("IsMinor() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuildChaperoneInfo(t *testing.T) {
	t.Run("full chaperone record", func(t *testing.T) {
		u := &User{Registration: &RegistrationDetails{
			IsHighSchoolStudent: true,
			Chaperone: &ChaperoneContact{
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane@example.com",
				Phone:     "555-1234",
			},
		}}
		info := u.BuildChaperoneInfo()
		if info.ChaperoneName != "Jane Doe" {
			t.Errorf("expected Jane Doe, got %q", info.ChaperoneName)
		}
		if info.ChaperoneEmail != "jane@example.com" {
			t.Errorf("unexpected email %q", info.ChaperoneEmail)
		}
		if info.ChaperonePhone != "555-1234" {
			t.Errorf("unexpected phone %q", info.ChaperonePhone)
		}
	})

	t.Run("missing chaperone record gets placeholders", func(t *testing.T) {
		u := &User{Registration: &RegistrationDetails{IsHighSchoolStudent: true}}
		info := u.BuildChaperoneInfo()
		if info.ChaperoneName != "" {
			t.Errorf("expected empty name, got %q", info.ChaperoneName)
		}
		if info.ChaperoneEmail != "N/A" || info.ChaperonePhone != "N/A" {
			t.Errorf("expected N/A placeholders, got %q and %q", info.ChaperoneEmail, info.ChaperonePhone)
		}
	})

	t.Run("partial chaperone name is trimmed", func(t *testing.T) {
		u := &User{Registration: &RegistrationDetails{
			Chaperone: &ChaperoneContact{FirstName: "Jane"},
		}}
		info := u.BuildChaperoneInfo()
		if info.ChaperoneName != "Jane" {
			t.Errorf("expected Jane, got %q", info.ChaperoneName)
		}
	})
}
